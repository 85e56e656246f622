// Command sealbidd runs the negotiation daemon: the session store, the
// reveal state machine, the event log, and (by default) an embedded
// coprocessor, all behind one HTTP API.
package main

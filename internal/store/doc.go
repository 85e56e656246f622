// Package store provides the session table and creation-order log backing
// the negotiation protocol.
//
// Two implementations of the domain.SessionStore contract exist:
//
//   - MemStore keeps everything in memory; it backs the daemon by default
//     and all tests.
//   - FileStore adds JSON persistence under a directory, writing each
//     committed state via a temp file and atomic rename so a crash never
//     leaves a torn file.
//
// Both serialise state-changing calls behind one mutex, which gives the
// protocol its required total order per session id and makes the reveal
// check-and-set plus match evaluation a single atomic step. Events are
// appended to the configured sink inside the same critical section as the
// commit, so observers never see an event without its state change.
package store

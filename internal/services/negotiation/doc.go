// Package negotiation implements the session protocol: create, join, the
// controlled two-party reveal state machine, and the deterministic
// deal-matching rule triggered exactly once per session. It orchestrates
// the session store, the confidential-compute verifier boundary, and the
// event log; all state changes go through the store's atomic operations.
package negotiation

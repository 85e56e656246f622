package interfaces

import domaintypes "sealbid/internal/domain/types"

// SessionStore is the single shared mutable resource of the protocol: the
// session table plus the append-only creation-order log. Implementations
// serialise all state-changing calls for one session id and apply each call
// all-or-nothing.
type SessionStore interface {
	// Create inserts a new session. The existence check and the insert are
	// one atomic step; an occupied id fails with domain.ErrAlreadyExists and
	// leaves the existing session untouched. The given events are appended
	// to the event sink inside the same critical section.
	Create(session domaintypes.Session, events ...domaintypes.Event) error

	// Update applies fn to a copy of the stored session under the store
	// lock. If fn returns an error nothing is committed and no event is
	// emitted; otherwise the mutated copy replaces the stored session and
	// the returned events are appended atomically with the commit. This is
	// the protocol's one must-be-atomic region: a reveal's check of the
	// other party's flag and set of its own happen inside fn.
	Update(
		id domaintypes.SessionID,
		fn func(*domaintypes.Session) ([]domaintypes.Event, error),
	) (domaintypes.Session, error)

	// Get returns the session or domain.ErrNotFound.
	Get(id domaintypes.SessionID) (domaintypes.Session, error)

	// List returns every session id exactly once, in creation order.
	List() []domaintypes.SessionID
}

// EventSink receives committed protocol events. Append assigns sequence
// numbers and timestamps; it is called by stores inside their commit path so
// observers never see an event without the corresponding state change.
type EventSink interface {
	Append(events ...domaintypes.Event)
}

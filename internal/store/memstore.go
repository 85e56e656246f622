package store

import (
	"sync"

	"sealbid/internal/domain"
)

// MemStore is the in-memory session table plus the append-only
// creation-order log. One mutex serialises every state-changing call: within
// a session id operations are totally ordered, and each commits all of its
// mutations and event emissions before the next call observes anything.
type MemStore struct {
	mu       sync.Mutex
	sessions map[domain.SessionID]domain.Session
	order    []domain.SessionID
	events   domain.EventSink
}

// NewMemStore returns an empty store emitting committed events to sink.
func NewMemStore(sink domain.EventSink) *MemStore {
	return &MemStore{
		sessions: make(map[domain.SessionID]domain.Session),
		events:   sink,
	}
}

// Create inserts session under its id. The existence check and the insert
// happen under one lock; a colliding id fails with domain.ErrAlreadyExists
// and leaves the prior session, the order log, and the event log untouched.
func (s *MemStore) Create(session domain.Session, events ...domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.sessions[session.ID] = session
	s.order = append(s.order, session.ID)
	s.events.Append(events...)
	return nil
}

// Update runs fn on a copy of the stored session while holding the store
// lock. An error from fn discards the copy: no mutation, no events. On
// success the copy replaces the stored record and the returned events are
// appended before the lock is released.
func (s *MemStore) Update(
	id domain.SessionID,
	fn func(*domain.Session) ([]domain.Event, error),
) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}

	updated := current
	events, err := fn(&updated)
	if err != nil {
		return domain.Session{}, err
	}
	s.sessions[id] = updated
	s.events.Append(events...)
	return updated, nil
}

// Get returns a copy of the stored session or domain.ErrNotFound.
func (s *MemStore) Get(id domain.SessionID) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

// List returns a copy of the creation-order log.
func (s *MemStore) List() []domain.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SessionID, len(s.order))
	copy(out, s.order)
	return out
}

// Compile-time assertion that MemStore implements domain.SessionStore.
var _ domain.SessionStore = (*MemStore)(nil)

package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"sealbid/internal/domain"
)

const sessionsFilename = "sessions.json"

// fileState is the entire durable state of the core: the session table and
// the ordered id log. Nothing else is persisted; the event log is an
// in-memory observer channel.
type fileState struct {
	Sessions map[domain.SessionID]domain.Session `json:"sessions"`
	Order    []domain.SessionID                  `json:"order"`
}

// FileStore persists sessions as JSON under dir. It keeps authoritative
// state in memory and writes the full state on every commit; a failed write
// aborts the operation with the in-memory state rolled back, keeping each
// call all-or-nothing.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	state  fileState
	events domain.EventSink
}

// OpenFileStore loads (or initialises) the store rooted at dir.
func OpenFileStore(dir string, sink domain.EventSink) (*FileStore, error) {
	st := fileState{Sessions: map[domain.SessionID]domain.Session{}}
	if err := readJSON(filepath.Join(dir, sessionsFilename), &st); err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if st.Sessions == nil {
		st.Sessions = map[domain.SessionID]domain.Session{}
	}
	return &FileStore{dir: dir, state: st, events: sink}, nil
}

// Create inserts session under its id, persisting before the lock is
// released. A colliding id fails with domain.ErrAlreadyExists.
func (s *FileStore) Create(session domain.Session, events ...domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Sessions[session.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.state.Sessions[session.ID] = session
	s.state.Order = append(s.state.Order, session.ID)

	if err := s.persist(); err != nil {
		delete(s.state.Sessions, session.ID)
		s.state.Order = s.state.Order[:len(s.state.Order)-1]
		return err
	}
	s.events.Append(events...)
	return nil
}

// Update applies fn transactionally, with the same contract as
// MemStore.Update; the commit additionally includes the durable write.
func (s *FileStore) Update(
	id domain.SessionID,
	fn func(*domain.Session) ([]domain.Event, error),
) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.state.Sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}

	updated := current
	events, err := fn(&updated)
	if err != nil {
		return domain.Session{}, err
	}
	s.state.Sessions[id] = updated

	if err := s.persist(); err != nil {
		s.state.Sessions[id] = current
		return domain.Session{}, err
	}
	s.events.Append(events...)
	return updated, nil
}

// Get returns the stored session or domain.ErrNotFound.
func (s *FileStore) Get(id domain.SessionID) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.state.Sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

// List returns a copy of the creation-order log.
func (s *FileStore) List() []domain.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SessionID, len(s.state.Order))
	copy(out, s.state.Order)
	return out
}

func (s *FileStore) persist() error {
	return writeJSON(filepath.Join(s.dir, sessionsFilename), s.state, 0o600)
}

// Compile-time assertion that FileStore implements domain.SessionStore.
var _ domain.SessionStore = (*FileStore)(nil)

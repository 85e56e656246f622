package eventlog

import (
	"sync"
	"time"

	"sealbid/internal/domain"
)

// Log is an append-only, in-memory record of protocol events. Entries get
// strictly increasing sequence numbers starting at 1 and are never rewritten
// or compacted. Observers poll with Since.
type Log struct {
	mu     sync.Mutex
	events []domain.Event
	now    func() time.Time
}

// New returns an empty log stamping entries with the wall clock.
func New() *Log {
	return &Log{now: time.Now}
}

// NewWithClock returns an empty log using clock for timestamps.
func NewWithClock(clock func() time.Time) *Log {
	return &Log{now: clock}
}

// Append records events in order, assigning sequence numbers and timestamps.
// Stores call it inside their commit path, so an appended event always
// reflects committed state.
func (l *Log) Append(events ...domain.Event) {
	if len(events) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	at := l.now().UnixNano()
	for _, ev := range events {
		ev.Seq = uint64(len(l.events) + 1)
		ev.At = at
		l.events = append(l.events, ev)
	}
}

// Since returns a copy of every event with sequence number greater than seq,
// in append order. Since(0) returns the whole log.
func (l *Log) Since(seq uint64) []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq >= uint64(len(l.events)) {
		return nil
	}
	out := make([]domain.Event, len(l.events)-int(seq))
	copy(out, l.events[seq:])
	return out
}

// Len returns the number of appended events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Compile-time assertion that Log implements domain.EventSink.
var _ domain.EventSink = (*Log)(nil)

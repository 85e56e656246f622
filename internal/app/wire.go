package app

import (
	"sealbid/internal/coproc"
	"sealbid/internal/domain"
	"sealbid/internal/eventlog"
	"sealbid/internal/server"
	"sealbid/internal/services/negotiation"
	"sealbid/internal/store"
)

// Wire bundles the daemon's store, event log, coprocessor, and service.
type Wire struct {
	Events   *eventlog.Log
	Sessions domain.SessionStore
	Coproc   server.Coprocessor
	Service  *negotiation.Service

	close func()
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	events := eventlog.New()

	var sessions domain.SessionStore
	if cfg.StateDir != "" {
		fs, err := store.OpenFileStore(cfg.StateDir, events)
		if err != nil {
			return nil, err
		}
		sessions = fs
	} else {
		sessions = store.NewMemStore(events)
	}

	var (
		cp      server.Coprocessor
		closeFn func()
	)
	if cfg.CoprocURL != "" {
		cp = coproc.NewClient(cfg.CoprocURL)
	} else {
		svc, err := coproc.NewService()
		if err != nil {
			return nil, err
		}
		cp = svc
		closeFn = svc.Close
	}

	return &Wire{
		Events:   events,
		Sessions: sessions,
		Coproc:   cp,
		Service:  negotiation.New(sessions, cp),
		close:    closeFn,
	}, nil
}

// Close releases key material held by an embedded coprocessor.
func (w *Wire) Close() {
	if w.close != nil {
		w.close()
	}
}

package store_test

import (
	"errors"
	"testing"

	"sealbid/internal/domain"
	"sealbid/internal/eventlog"
	"sealbid/internal/store"
)

func openFileStore(t *testing.T, dir string) *store.FileStore {
	t.Helper()
	s, err := store.OpenFileStore(dir, eventlog.New())
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := openFileStore(t, dir)

	sess := testSession(t, 1)
	sess.EncryptedBuyerPrice = domain.CiphertextHandle{0xC1}
	if err := s.Create(sess, domain.Event{Kind: domain.EventSessionCreated}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Update(sess.ID, func(cur *domain.Session) ([]domain.Event, error) {
		cur.Seller = domain.PartyID{0xB2}
		return nil, nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Reopen from disk and confirm table and order log survive.
	reopened := openFileStore(t, dir)
	got, err := reopened.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.EncryptedBuyerPrice != sess.EncryptedBuyerPrice {
		t.Fatalf("handle lost across reopen: %+v", got)
	}
	if got.Seller != (domain.PartyID{0xB2}) {
		t.Fatalf("update lost across reopen: %+v", got)
	}

	order := reopened.List()
	if len(order) != 1 || order[0] != sess.ID {
		t.Fatalf("order log lost across reopen: %v", order)
	}
}

func TestFileStoreCollision(t *testing.T) {
	s := openFileStore(t, t.TempDir())

	sess := testSession(t, 2)
	if err := s.Create(sess); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(sess); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
	if len(s.List()) != 1 {
		t.Fatalf("order log grew on failed create")
	}
}

func TestFileStoreUpdateErrorDiscards(t *testing.T) {
	dir := t.TempDir()
	s := openFileStore(t, dir)

	sess := testSession(t, 3)
	if err := s.Create(sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	if _, err := s.Update(sess.ID, func(cur *domain.Session) ([]domain.Event, error) {
		cur.DealMatched = true
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	got, _ := openFileStore(t, dir).Get(sess.ID)
	if got.DealMatched {
		t.Fatalf("failed update persisted")
	}
}

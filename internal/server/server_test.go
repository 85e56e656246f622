package server_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"sealbid/internal/client"
	"sealbid/internal/coproc"
	"sealbid/internal/crypto"
	"sealbid/internal/domain"
	"sealbid/internal/eventlog"
	"sealbid/internal/server"
	"sealbid/internal/services/negotiation"
	"sealbid/internal/store"
)

// startDaemon wires a full daemon onto an httptest server and returns the
// typed API client and the coprocessor client against it.
func startDaemon(t *testing.T) (*client.HTTP, *coproc.Client) {
	t.Helper()

	vault, err := coproc.NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(vault.Close)

	events := eventlog.New()
	svc := negotiation.New(store.NewMemStore(events), vault)
	ts := httptest.NewServer(server.New(svc, events, vault).Handler())
	t.Cleanup(ts.Close)

	return client.New(ts.URL), coproc.NewClient(ts.URL)
}

func TestEndToEndOverHTTP(t *testing.T) {
	ctx := context.Background()
	api, vault := startDaemon(t)

	buyer := crypto.DerivePartyID("alice")
	seller := crypto.DerivePartyID("bob")

	if !api.IsAvailable(ctx) {
		t.Fatalf("daemon not available")
	}

	// Buyer commits 100.
	buyerCT, buyerIngest, err := vault.Encrypt(ctx, 100)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	id, err := api.Create(ctx, server.CreateRequest{
		Requester:  buyer,
		Ciphertext: buyerCT,
		Proof:      buyerIngest,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Seller joins with 80.
	sellerCT, sellerIngest, err := vault.Encrypt(ctx, 80)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := api.Join(ctx, id, server.JoinRequest{
		Requester:  seller,
		Ciphertext: sellerCT,
		Proof:      sellerIngest,
	}); err != nil {
		t.Fatalf("Join: %v", err)
	}

	prices, err := api.EncryptedPrices(ctx, id)
	if err != nil {
		t.Fatalf("EncryptedPrices: %v", err)
	}
	if prices.Buyer.IsZero() || prices.Seller.IsZero() {
		t.Fatalf("handles missing after join: %+v", prices)
	}

	// Buyer reveals: not final yet.
	clear, proof, err := vault.Prove(ctx, prices.Buyer)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	rev, err := api.RevealBuyer(ctx, id, server.RevealRequest{Requester: buyer, Clear: clear, Proof: proof})
	if err != nil {
		t.Fatalf("RevealBuyer: %v", err)
	}
	if rev.Price != 100 || rev.Final || rev.DealMatched {
		t.Fatalf("buyer reveal response: %+v", rev)
	}

	// Seller reveals: deal matches at the ask.
	clear, proof, err = vault.Prove(ctx, prices.Seller)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	rev, err = api.RevealSeller(ctx, id, server.RevealRequest{Requester: seller, Clear: clear, Proof: proof})
	if err != nil {
		t.Fatalf("RevealSeller: %v", err)
	}
	if rev.Price != 80 || !rev.Final || !rev.DealMatched {
		t.Fatalf("seller reveal response: %+v", rev)
	}

	got, err := api.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.DealMatched || got.State != "fully-revealed" {
		t.Fatalf("final projection: %+v", got)
	}

	ids, err := api.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("List: %v", ids)
	}

	events, err := api.Events(ctx, 0)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	// create, join, two reveals, match.
	if len(events) != 5 {
		t.Fatalf("want 5 events, got %d: %+v", len(events), events)
	}
	if events[len(events)-1].Kind != domain.EventDealMatched || events[len(events)-1].Price != 80 {
		t.Fatalf("last event: %+v", events[len(events)-1])
	}

	// Polling past the end yields nothing.
	tail, err := api.Events(ctx, uint64(len(events)))
	if err != nil {
		t.Fatalf("Events(since): %v", err)
	}
	if len(tail) != 0 {
		t.Fatalf("tail poll returned %d events", len(tail))
	}
}

func TestErrorMapping(t *testing.T) {
	ctx := context.Background()
	api, vault := startDaemon(t)

	buyer := crypto.DerivePartyID("alice")
	seller := crypto.DerivePartyID("bob")

	// Unknown session: 404 → ErrNotFound.
	if _, err := api.Get(ctx, domain.SessionID{1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// Garbage ciphertext: 422 → ErrInvalidEncryption.
	if _, err := api.Create(ctx, server.CreateRequest{
		Requester:  buyer,
		Ciphertext: []byte("junk"),
		Proof:      []byte("junk"),
	}); !errors.Is(err, domain.ErrInvalidEncryption) {
		t.Fatalf("want ErrInvalidEncryption, got %v", err)
	}

	ct, ingest, err := vault.Encrypt(ctx, 10)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	id, err := api.Create(ctx, server.CreateRequest{Requester: buyer, Ciphertext: ct, Proof: ingest})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ct, ingest, err = vault.Encrypt(ctx, 20)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	join := server.JoinRequest{Requester: seller, Ciphertext: ct, Proof: ingest}
	if err := api.Join(ctx, id, join); err != nil {
		t.Fatalf("Join: %v", err)
	}

	// Second join: 409 → ErrAlreadyJoined.
	if err := api.Join(ctx, id, join); !errors.Is(err, domain.ErrAlreadyJoined) {
		t.Fatalf("want ErrAlreadyJoined, got %v", err)
	}

	// Foreign party reveal: 403 → ErrUnauthorized.
	prices, err := api.EncryptedPrices(ctx, id)
	if err != nil {
		t.Fatalf("EncryptedPrices: %v", err)
	}
	clear, proof, err := vault.Prove(ctx, prices.Buyer)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if _, err := api.RevealBuyer(ctx, id, server.RevealRequest{
		Requester: seller, Clear: clear, Proof: proof,
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}

	// Bad proof: 422 → ErrInvalidProof.
	bad := append([]byte(nil), proof...)
	bad[0] ^= 1
	if _, err := api.RevealBuyer(ctx, id, server.RevealRequest{
		Requester: buyer, Clear: clear, Proof: bad,
	}); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("want ErrInvalidProof, got %v", err)
	}

	// Honest reveal, then replay: 409 → ErrAlreadyRevealed.
	if _, err := api.RevealBuyer(ctx, id, server.RevealRequest{
		Requester: buyer, Clear: clear, Proof: proof,
	}); err != nil {
		t.Fatalf("RevealBuyer: %v", err)
	}
	if _, err := api.RevealBuyer(ctx, id, server.RevealRequest{
		Requester: buyer, Clear: clear, Proof: proof,
	}); !errors.Is(err, domain.ErrAlreadyRevealed) {
		t.Fatalf("want ErrAlreadyRevealed, got %v", err)
	}
}

func TestCoprocEndpoints(t *testing.T) {
	ctx := context.Background()
	_, vault := startDaemon(t)

	ct, ingestProof, err := vault.Encrypt(ctx, 777)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	handle, err := vault.Ingest(ctx, ct, ingestProof)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	clear, proof, err := vault.Prove(ctx, handle)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	price, err := vault.VerifyReveal(ctx, handle, clear, proof)
	if err != nil {
		t.Fatalf("VerifyReveal: %v", err)
	}
	if price != 777 {
		t.Fatalf("verified price %d, want 777", price)
	}

	// Remote validation failures map back to the sentinels.
	if _, err := vault.Ingest(ctx, []byte("junk"), []byte("junk")); !errors.Is(err, domain.ErrInvalidEncryption) {
		t.Fatalf("want ErrInvalidEncryption, got %v", err)
	}
	lie := []byte{1, 2, 3, 4}
	if _, err := vault.VerifyReveal(ctx, handle, lie, proof); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("want ErrInvalidProof, got %v", err)
	}
}

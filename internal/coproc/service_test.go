package coproc_test

import (
	"context"
	"errors"
	"testing"

	"sealbid/internal/coproc"
	"sealbid/internal/domain"
)

func newService(t *testing.T) *coproc.Service {
	t.Helper()
	s, err := coproc.NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestEncryptIngestProveVerify(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ct, ingestProof, err := svc.Encrypt(ctx, 1234)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	handle, err := svc.Ingest(ctx, ct, ingestProof)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if handle.IsZero() {
		t.Fatalf("Ingest returned zero handle")
	}

	clear, proof, err := svc.Prove(ctx, handle)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	price, err := svc.VerifyReveal(ctx, handle, clear, proof)
	if err != nil {
		t.Fatalf("VerifyReveal: %v", err)
	}
	if price != 1234 {
		t.Fatalf("revealed %d, want 1234", price)
	}
}

func TestIngestRejectsTamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ct, proof, err := svc.Encrypt(ctx, 7)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tampered := append([]byte(nil), ct...)
	tampered[len(tampered)-1] ^= 1
	if _, err := svc.Ingest(ctx, tampered, proof); !errors.Is(err, domain.ErrInvalidEncryption) {
		t.Fatalf("tampered ciphertext: want ErrInvalidEncryption, got %v", err)
	}

	if _, err := svc.Ingest(ctx, []byte("short"), proof); !errors.Is(err, domain.ErrInvalidEncryption) {
		t.Fatalf("short ciphertext: want ErrInvalidEncryption, got %v", err)
	}

	// Ciphertext from a different service instance fails the inclusion proof.
	other := newService(t)
	otherCT, otherProof, err := other.Encrypt(ctx, 7)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := svc.Ingest(ctx, otherCT, otherProof); !errors.Is(err, domain.ErrInvalidEncryption) {
		t.Fatalf("foreign ciphertext: want ErrInvalidEncryption, got %v", err)
	}
}

func TestVerifyRevealRejectsWrongClaim(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ct, ingestProof, err := svc.Encrypt(ctx, 100)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	handle, err := svc.Ingest(ctx, ct, ingestProof)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	clear, proof, err := svc.Prove(ctx, handle)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	// Claiming a different value with the honest proof fails.
	lie := []byte{0, 0, 0, 99}
	if _, err := svc.VerifyReveal(ctx, handle, lie, proof); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("wrong claim: want ErrInvalidProof, got %v", err)
	}

	// A corrupted proof over the honest value fails.
	bad := append([]byte(nil), proof...)
	bad[0] ^= 1
	if _, err := svc.VerifyReveal(ctx, handle, clear, bad); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("bad proof: want ErrInvalidProof, got %v", err)
	}

	// An unknown handle cannot be attested.
	if _, err := svc.VerifyReveal(ctx, domain.CiphertextHandle{1}, clear, proof); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("unknown handle: want ErrInvalidProof, got %v", err)
	}

	// Truncated clear bytes fail before any lookup.
	if _, err := svc.VerifyReveal(ctx, handle, clear[:2], proof); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("short clear: want ErrInvalidProof, got %v", err)
	}
}

func TestProveUnknownHandle(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.Prove(context.Background(), domain.CiphertextHandle{9}); !errors.Is(err, domain.ErrInvalidProof) {
		t.Fatalf("want ErrInvalidProof, got %v", err)
	}
}

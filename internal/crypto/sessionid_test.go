package crypto_test

import (
	"testing"

	"sealbid/internal/crypto"
)

func TestDeriveSessionID_Deterministic(t *testing.T) {
	alice := crypto.DerivePartyID("alice")

	a := crypto.DeriveSessionID(alice, 42)
	b := crypto.DeriveSessionID(alice, 42)
	if a != b {
		t.Fatalf("same inputs derived different ids: %s vs %s", a, b)
	}

	c := crypto.DeriveSessionID(alice, 43)
	if a == c {
		t.Fatalf("different nonces derived the same id: %s", a)
	}

	bob := crypto.DerivePartyID("bob")
	d := crypto.DeriveSessionID(bob, 42)
	if a == d {
		t.Fatalf("different requesters derived the same id: %s", a)
	}
}

func TestParsePartyID(t *testing.T) {
	derived, err := crypto.ParsePartyID("alice")
	if err != nil {
		t.Fatalf("ParsePartyID(alice): %v", err)
	}
	if derived != crypto.DerivePartyID("alice") {
		t.Fatalf("name form did not derive")
	}

	// Hex round trip.
	parsed, err := crypto.ParsePartyID(derived.String())
	if err != nil {
		t.Fatalf("ParsePartyID(hex): %v", err)
	}
	if parsed != derived {
		t.Fatalf("hex form did not parse to the same id")
	}

	if _, err := crypto.ParsePartyID(""); err == nil {
		t.Fatalf("empty party id accepted")
	}
}

func TestParseSessionID(t *testing.T) {
	id := crypto.DeriveSessionID(crypto.DerivePartyID("alice"), 7)
	parsed, err := crypto.ParseSessionID(id.String())
	if err != nil {
		t.Fatalf("ParseSessionID: %v", err)
	}
	if parsed != id {
		t.Fatalf("round trip mismatch")
	}

	if _, err := crypto.ParseSessionID("zz"); err == nil {
		t.Fatalf("bad hex accepted")
	}
}

package types

import (
	"encoding/hex"
	"fmt"
)

// SessionID uniquely identifies a negotiation session.
type SessionID [32]byte

// String returns the hex form of the session id.
func (id SessionID) String() string { return hex.EncodeToString(id[:]) }

// IsZero reports whether the id is the zero value.
func (id SessionID) IsZero() bool { return id == SessionID{} }

// MarshalText encodes the id as lowercase hex for JSON and map keys.
func (id SessionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a 64-char hex string.
func (id *SessionID) UnmarshalText(b []byte) error {
	return decode32("session id", (*[32]byte)(id), b)
}

// PartyID identifies a negotiating party. The zero value is the
// "seller not yet joined" sentinel.
type PartyID [32]byte

// String returns the hex form of the party id.
func (p PartyID) String() string { return hex.EncodeToString(p[:]) }

// IsZero reports whether the party id is unset.
func (p PartyID) IsZero() bool { return p == PartyID{} }

// MarshalText encodes the party id as lowercase hex.
func (p PartyID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a 64-char hex string.
func (p *PartyID) UnmarshalText(b []byte) error {
	return decode32("party id", (*[32]byte)(p), b)
}

// CiphertextHandle is an opaque reference to an encrypted price held by the
// confidential-compute service. The core never inspects ciphertext bytes;
// handles are only usable through the Verifier capabilities. The zero value
// means "no ciphertext bound".
type CiphertextHandle [32]byte

// String returns the hex form of the handle.
func (h CiphertextHandle) String() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether the handle is unset.
func (h CiphertextHandle) IsZero() bool { return h == CiphertextHandle{} }

// MarshalText encodes the handle as lowercase hex.
func (h CiphertextHandle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a 64-char hex string.
func (h *CiphertextHandle) UnmarshalText(b []byte) error {
	return decode32("ciphertext handle", (*[32]byte)(h), b)
}

// Price is a clear 32-bit price. Ciphertexts encrypt exactly this width.
type Price uint32

func decode32(what string, dst *[32]byte, b []byte) error {
	raw, err := hex.DecodeString(string(b))
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("%s: want 32 bytes, got %d", what, len(raw))
	}
	copy(dst[:], raw)
	return nil
}

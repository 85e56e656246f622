package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"sealbid/internal/domain"
)

// Domain-separation prefixes for SHA3 derivations.
const (
	sessionIDPrefix = "sealbid/session/v1"
	partyIDPrefix   = "sealbid/party/v1"
)

// DeriveSessionID derives a session id from the requester identity and a
// creation nonce (typically the creation time in unix nanoseconds). The
// derivation is deterministic: identical inputs collide, and the store
// rejects the collision rather than overwrite.
func DeriveSessionID(requester domain.PartyID, nonce uint64) domain.SessionID {
	h := sha3.New256()
	h.Write([]byte(sessionIDPrefix))
	h.Write(requester[:])
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	h.Write(n[:])

	var id domain.SessionID
	h.Sum(id[:0])
	return id
}

// DerivePartyID maps a human-readable party name to a PartyID.
func DerivePartyID(name string) domain.PartyID {
	h := sha3.New256()
	h.Write([]byte(partyIDPrefix))
	h.Write([]byte(name))

	var p domain.PartyID
	h.Sum(p[:0])
	return p
}

// ParsePartyID accepts either a 64-char hex party id or a plain name, which
// is derived via DerivePartyID. Empty input is an error.
func ParsePartyID(s string) (domain.PartyID, error) {
	if s == "" {
		return domain.PartyID{}, fmt.Errorf("party id is empty")
	}
	if raw, err := hex.DecodeString(s); err == nil && len(raw) == 32 {
		var p domain.PartyID
		copy(p[:], raw)
		return p, nil
	}
	return DerivePartyID(s), nil
}

// ParseSessionID decodes a 64-char hex session id.
func ParseSessionID(s string) (domain.SessionID, error) {
	var id domain.SessionID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return domain.SessionID{}, err
	}
	return id, nil
}

// Fingerprint returns a short hex fingerprint of a 32-byte identifier.
//
// It truncates to 10 bytes (20 hex chars), enough for display.
func Fingerprint(b []byte) string {
	sum := sha3.Sum256(b)
	return hex.EncodeToString(sum[:10])
}

// Package crypto exposes the minimal primitives used by sealbid.
//
// Contents
//
//   - Deterministic session-id derivation from requester identity and a
//     creation nonce (DeriveSessionID)
//   - Party id derivation from human-readable names and hex parsing
//     (DerivePartyID, ParsePartyID)
//   - Short fingerprints of 32-byte identifiers for display/logging
//     (Fingerprint)
//
// # Notes
//
// Derivations use SHA3-256 with distinct domain-separation prefixes so a
// session id can never collide with a party id for related inputs. All
// functions return fixed-size array types defined in internal/domain.
package crypto

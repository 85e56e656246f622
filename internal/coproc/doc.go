// Package coproc adapts the external confidential-compute service that owns
// the homomorphic-encryption side of the protocol. The core consumes only
// the two capability calls of domain.Verifier; the wallet side uses
// domain.PriceVault to produce ciphertexts and decryption proofs.
//
// Service is an in-process stand-in for the real engine, built on
// ChaCha20-Poly1305, HKDF, and SHA3. It keeps a registry of ingested
// handles in memory, so proofs only verify for ciphertexts ingested within
// the same process lifetime. Client talks to a remote coprocessor over
// HTTP with the same contract.
package coproc

package coproc

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"sealbid/internal/domain"
	"sealbid/internal/util/memzero"
)

const (
	clearSize  = 4 // prices are 32-bit values
	nonceSize  = chacha20poly1305.NonceSize
	keySize    = chacha20poly1305.KeySize
	handleInfo = "sealbid/handle/v1"
	proofInfo  = "sealbid/reveal-proof/v1"
)

// Service is the in-process confidential-compute service. A ciphertext is
// an AEAD seal of the 4-byte big-endian price under the service key; its
// handle is the SHA3-256 of the ciphertext bytes. Inclusion proofs bind the
// ciphertext to this service instance, and decryption proofs are keyed MACs
// over handle||clear under a per-handle key, so a proof for one value never
// attests another.
type Service struct {
	aead      cipher.AEAD
	macKey    []byte
	proofRoot []byte

	mu       sync.Mutex
	registry map[domain.CiphertextHandle]domain.Price
}

// NewService creates a Service with fresh random keys.
func NewService() (*Service, error) {
	sealKey := make([]byte, keySize)
	macKey := make([]byte, keySize)
	proofRoot := make([]byte, keySize)
	for _, k := range [][]byte{sealKey, macKey, proofRoot} {
		if _, err := rand.Read(k); err != nil {
			return nil, err
		}
	}

	aead, err := chacha20poly1305.New(sealKey)
	if err != nil {
		return nil, err
	}
	memzero.Zero(sealKey)

	return &Service{
		aead:      aead,
		macKey:    macKey,
		proofRoot: proofRoot,
		registry:  make(map[domain.CiphertextHandle]domain.Price),
	}, nil
}

// Close wipes the service's key material.
func (s *Service) Close() {
	memzero.ZeroAll(s.macKey, s.proofRoot)
}

// Encrypt seals price and returns the ciphertext plus its inclusion proof.
func (s *Service) Encrypt(_ context.Context, price domain.Price) (ciphertext, inclusionProof []byte, err error) {
	var clear [clearSize]byte
	binary.BigEndian.PutUint32(clear[:], uint32(price))

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	ciphertext = s.aead.Seal(nonce, nonce, clear[:], []byte(handleInfo))
	return ciphertext, mac(s.macKey, ciphertext), nil
}

// Ingest validates a ciphertext against its inclusion proof, registers it,
// and returns the opaque handle. Any malformed or foreign ciphertext fails
// with domain.ErrInvalidEncryption.
func (s *Service) Ingest(_ context.Context, ciphertext, inclusionProof []byte) (domain.CiphertextHandle, error) {
	if len(ciphertext) < nonceSize+clearSize {
		return domain.CiphertextHandle{}, domain.ErrInvalidEncryption
	}
	if subtle.ConstantTimeCompare(inclusionProof, mac(s.macKey, ciphertext)) != 1 {
		return domain.CiphertextHandle{}, domain.ErrInvalidEncryption
	}

	clear, err := s.aead.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], []byte(handleInfo))
	if err != nil || len(clear) != clearSize {
		return domain.CiphertextHandle{}, domain.ErrInvalidEncryption
	}

	handle := handleOf(ciphertext)
	price := domain.Price(binary.BigEndian.Uint32(clear))

	s.mu.Lock()
	s.registry[handle] = price
	s.mu.Unlock()
	return handle, nil
}

// Prove returns the clear value behind handle and a decryption proof for it.
func (s *Service) Prove(_ context.Context, handle domain.CiphertextHandle) (clear, decryptionProof []byte, err error) {
	s.mu.Lock()
	price, ok := s.registry[handle]
	s.mu.Unlock()
	if !ok {
		return nil, nil, domain.ErrInvalidProof
	}

	clear = make([]byte, clearSize)
	binary.BigEndian.PutUint32(clear, uint32(price))
	return clear, mac(s.proofKey(handle), handle[:], clear), nil
}

// VerifyReveal checks that claimedClear is the true plaintext behind handle.
// The proof is a MAC only this service can produce, and it is only ever
// produced over the true value, so a mismatched claim fails.
func (s *Service) VerifyReveal(
	_ context.Context,
	handle domain.CiphertextHandle,
	claimedClear []byte,
	decryptionProof []byte,
) (domain.Price, error) {
	if len(claimedClear) != clearSize {
		return 0, domain.ErrInvalidProof
	}

	s.mu.Lock()
	_, known := s.registry[handle]
	s.mu.Unlock()
	if !known {
		return 0, domain.ErrInvalidProof
	}

	expected := mac(s.proofKey(handle), handle[:], claimedClear)
	if subtle.ConstantTimeCompare(decryptionProof, expected) != 1 {
		return 0, domain.ErrInvalidProof
	}
	return domain.Price(binary.BigEndian.Uint32(claimedClear)), nil
}

// proofKey derives the per-handle decryption-proof key.
func (s *Service) proofKey(handle domain.CiphertextHandle) []byte {
	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, s.proofRoot, handle[:], []byte(proofInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		panic(err) // hkdf cannot fail for these sizes
	}
	return key
}

func handleOf(ciphertext []byte) domain.CiphertextHandle {
	h := sha3.New256()
	h.Write([]byte(handleInfo))
	h.Write(ciphertext)

	var handle domain.CiphertextHandle
	h.Sum(handle[:0])
	return handle
}

// mac computes a SHA3 keyed MAC over the concatenated parts.
func mac(key []byte, parts ...[]byte) []byte {
	h := sha3.New256()
	h.Write(key)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// Compile-time assertions for both capability contracts.
var (
	_ domain.Verifier   = (*Service)(nil)
	_ domain.PriceVault = (*Service)(nil)
)

package interfaces

import (
	"context"

	domaintypes "sealbid/internal/domain/types"
)

// Verifier is the boundary to the external confidential-compute service.
// Both operations are pure validation: no session state is touched here.
type Verifier interface {
	// Ingest validates an externally produced ciphertext against its
	// inclusion proof and returns the opaque handle the core stores.
	// Fails with domain.ErrInvalidEncryption.
	Ingest(ctx context.Context, ciphertext, inclusionProof []byte) (domaintypes.CiphertextHandle, error)

	// VerifyReveal checks that claimedClear (4 bytes, big endian) is the
	// true plaintext behind handle, attested by decryptionProof, and
	// returns the clear price. Fails with domain.ErrInvalidProof.
	VerifyReveal(
		ctx context.Context,
		handle domaintypes.CiphertextHandle,
		claimedClear []byte,
		decryptionProof []byte,
	) (domaintypes.Price, error)
}

// PriceVault is the wallet-side capability of the confidential-compute
// service: it produces the ciphertexts and decryption proofs a party submits
// to the core. The core itself never calls it.
type PriceVault interface {
	// Encrypt seals a clear price and returns the ciphertext plus the
	// inclusion proof accepted by Verifier.Ingest.
	Encrypt(ctx context.Context, price domaintypes.Price) (ciphertext, inclusionProof []byte, err error)

	// Prove returns the clear value bytes behind handle together with a
	// decryption proof accepted by Verifier.VerifyReveal.
	Prove(ctx context.Context, handle domaintypes.CiphertextHandle) (clear, decryptionProof []byte, err error)
}

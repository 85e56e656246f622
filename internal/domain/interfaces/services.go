package interfaces

import (
	"context"

	domaintypes "sealbid/internal/domain/types"
)

// NegotiationService is the full protocol surface: session creation and
// joining, the two-party reveal state machine, and read-only projections.
type NegotiationService interface {
	// Create opens a session with requester as buyer. The buyer ciphertext
	// is ingested through the verifier before any state is written.
	Create(
		ctx context.Context,
		requester domaintypes.PartyID,
		ciphertext, inclusionProof []byte,
		provisionalBuyer, provisionalSeller domaintypes.Price,
	) (domaintypes.SessionID, error)

	// Join binds requester as seller of an existing, not yet joined session.
	Join(
		ctx context.Context,
		id domaintypes.SessionID,
		requester domaintypes.PartyID,
		ciphertext, inclusionProof []byte,
		provisionalSeller domaintypes.Price,
	) error

	// RevealBuyerPrice proves the buyer's committed price in the clear.
	// The reveal that makes both flags true also decides the deal match.
	RevealBuyerPrice(
		ctx context.Context,
		id domaintypes.SessionID,
		requester domaintypes.PartyID,
		claimedClear, decryptionProof []byte,
	) (domaintypes.Price, error)

	// RevealSellerPrice is symmetric to RevealBuyerPrice with roles swapped.
	RevealSellerPrice(
		ctx context.Context,
		id domaintypes.SessionID,
		requester domaintypes.PartyID,
		claimedClear, decryptionProof []byte,
	) (domaintypes.Price, error)

	// Get returns the full session projection.
	Get(id domaintypes.SessionID) (domaintypes.Session, error)

	// EncryptedPrices returns both ciphertext handles.
	EncryptedPrices(id domaintypes.SessionID) (buyer, seller domaintypes.CiphertextHandle, err error)

	// List returns all session ids in creation order.
	List() []domaintypes.SessionID

	// IsAvailable is a liveness probe; it always succeeds.
	IsAvailable() bool
}

package negotiation

import (
	"context"
	"time"

	"sealbid/internal/crypto"
	"sealbid/internal/domain"
	"sealbid/internal/protocol/match"
)

// Service drives the negotiation protocol: session creation and joining,
// ciphertext ingestion, the two-party reveal state machine, and the
// exactly-once deal-matching decision.
//
// Each operation:
//   - Validates ciphertexts and proofs through the verifier boundary before
//     any state is touched.
//   - Applies its state changes through the store's transactional Update,
//     so a reveal's check of the other party's flag and set of its own flag
//     are one atomic step regardless of arrival order.
//   - Emits events only as part of a committed transition; a failed call
//     leaves no state change and no event behind.
type Service struct {
	store    domain.SessionStore
	verifier domain.Verifier
	now      func() time.Time
}

// New constructs a Service over the given store and verifier.
func New(store domain.SessionStore, verifier domain.Verifier) *Service {
	return NewWithClock(store, verifier, time.Now)
}

// NewWithClock is New with an injected clock, used by tests to force
// deterministic session ids.
func NewWithClock(store domain.SessionStore, verifier domain.Verifier, clock func() time.Time) *Service {
	return &Service{store: store, verifier: verifier, now: clock}
}

// Create opens a session with requester as buyer.
//
// Steps:
//  1. Ingest the buyer ciphertext through the verifier (ErrInvalidEncryption
//     on failure); nothing is written if ingestion fails.
//  2. Derive the session id from the requester and the creation time.
//  3. Insert check-then-write atomically; a colliding id fails with
//     ErrAlreadyExists and leaves the existing session untouched.
func (s *Service) Create(
	ctx context.Context,
	requester domain.PartyID,
	ciphertext, inclusionProof []byte,
	provisionalBuyer, provisionalSeller domain.Price,
) (domain.SessionID, error) {
	handle, err := s.verifier.Ingest(ctx, ciphertext, inclusionProof)
	if err != nil {
		return domain.SessionID{}, err
	}

	now := s.now().UnixNano()
	id := crypto.DeriveSessionID(requester, uint64(now))

	session := domain.Session{
		ID:                  id,
		Buyer:               requester,
		EncryptedBuyerPrice: handle,
		PublicBuyerPrice:    provisionalBuyer,
		PublicSellerPrice:   provisionalSeller,
		CreatedUTC:          now,
	}
	created := domain.Event{
		Kind:    domain.EventSessionCreated,
		Session: id,
		Party:   requester,
	}
	if err := s.store.Create(session, created); err != nil {
		return domain.SessionID{}, err
	}
	return id, nil
}

// Join binds requester as seller of an existing session, ingesting the
// seller ciphertext first. The creation event is re-emitted with the seller
// bound, mirroring the joined state rather than a duplicate creation.
func (s *Service) Join(
	ctx context.Context,
	id domain.SessionID,
	requester domain.PartyID,
	ciphertext, inclusionProof []byte,
	provisionalSeller domain.Price,
) error {
	// Preflight for error precedence: NotFound and AlreadyJoined outrank
	// InvalidEncryption. The Update closure re-checks under the lock.
	session, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if session.Joined() {
		return domain.ErrAlreadyJoined
	}

	handle, err := s.verifier.Ingest(ctx, ciphertext, inclusionProof)
	if err != nil {
		return err
	}

	_, err = s.store.Update(id, func(cur *domain.Session) ([]domain.Event, error) {
		if cur.Joined() {
			return nil, domain.ErrAlreadyJoined
		}
		cur.Seller = requester
		cur.EncryptedSellerPrice = handle
		cur.PublicSellerPrice = provisionalSeller

		return []domain.Event{{
			Kind:    domain.EventSessionCreated,
			Session: id,
			Party:   requester,
		}}, nil
	})
	return err
}

// RevealBuyerPrice proves the buyer's committed price in the clear.
//
// Check order: NotFound, Unauthorized, AlreadyRevealed, InvalidProof. The
// proof is verified outside the store lock (it is pure validation against
// an immutable handle); the flag check-and-set, the peek at the seller's
// flag, and the match decision are one atomic store update. Whichever
// reveal lands second observes both flags true and evaluates the match,
// exactly once.
func (s *Service) RevealBuyerPrice(
	ctx context.Context,
	id domain.SessionID,
	requester domain.PartyID,
	claimedClear, decryptionProof []byte,
) (domain.Price, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return 0, err
	}
	if requester != session.Buyer {
		return 0, domain.ErrUnauthorized
	}
	if session.BuyerRevealed {
		return 0, domain.ErrAlreadyRevealed
	}

	price, err := s.verifier.VerifyReveal(ctx, session.EncryptedBuyerPrice, claimedClear, decryptionProof)
	if err != nil {
		return 0, err
	}

	_, err = s.store.Update(id, func(cur *domain.Session) ([]domain.Event, error) {
		if requester != cur.Buyer {
			return nil, domain.ErrUnauthorized
		}
		if cur.BuyerRevealed {
			return nil, domain.ErrAlreadyRevealed
		}
		cur.PublicBuyerPrice = price
		cur.BuyerRevealed = true

		events := []domain.Event{{
			Kind:    domain.EventPriceRevealed,
			Session: id,
			Party:   requester,
			Price:   price,
		}}
		if cur.SellerRevealed {
			events = append(events, decide(cur)...)
		}
		return events, nil
	})
	if err != nil {
		return 0, err
	}
	return price, nil
}

// RevealSellerPrice is symmetric to RevealBuyerPrice with roles swapped.
func (s *Service) RevealSellerPrice(
	ctx context.Context,
	id domain.SessionID,
	requester domain.PartyID,
	claimedClear, decryptionProof []byte,
) (domain.Price, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return 0, err
	}
	if requester != session.Seller || requester.IsZero() {
		return 0, domain.ErrUnauthorized
	}
	if session.SellerRevealed {
		return 0, domain.ErrAlreadyRevealed
	}

	price, err := s.verifier.VerifyReveal(ctx, session.EncryptedSellerPrice, claimedClear, decryptionProof)
	if err != nil {
		return 0, err
	}

	_, err = s.store.Update(id, func(cur *domain.Session) ([]domain.Event, error) {
		if requester != cur.Seller {
			return nil, domain.ErrUnauthorized
		}
		if cur.SellerRevealed {
			return nil, domain.ErrAlreadyRevealed
		}
		cur.PublicSellerPrice = price
		cur.SellerRevealed = true

		events := []domain.Event{{
			Kind:    domain.EventPriceRevealed,
			Session: id,
			Party:   requester,
			Price:   price,
		}}
		if cur.BuyerRevealed {
			events = append(events, decide(cur)...)
		}
		return events, nil
	})
	if err != nil {
		return 0, err
	}
	return price, nil
}

// decide runs the matching rule on a fully revealed session. Called inside
// the store update that set the second flag, so it runs exactly once per
// session. No match means the session stays fully revealed with
// DealMatched false, permanently.
func decide(cur *domain.Session) []domain.Event {
	matched, settlement := match.Evaluate(cur.PublicBuyerPrice, cur.PublicSellerPrice)
	if !matched {
		return nil
	}
	cur.DealMatched = true
	return []domain.Event{{
		Kind:    domain.EventDealMatched,
		Session: cur.ID,
		Price:   settlement,
	}}
}

// Get returns the full session projection.
func (s *Service) Get(id domain.SessionID) (domain.Session, error) {
	return s.store.Get(id)
}

// EncryptedPrices returns both ciphertext handles. The seller handle is
// zero until the session is joined.
func (s *Service) EncryptedPrices(id domain.SessionID) (buyer, seller domain.CiphertextHandle, err error) {
	session, err := s.store.Get(id)
	if err != nil {
		return domain.CiphertextHandle{}, domain.CiphertextHandle{}, err
	}
	return session.EncryptedBuyerPrice, session.EncryptedSellerPrice, nil
}

// List returns all session ids in creation order.
func (s *Service) List() []domain.SessionID {
	return s.store.List()
}

// IsAvailable is the liveness probe; it always succeeds.
func (s *Service) IsAvailable() bool { return true }

// Compile-time assertion that Service implements domain.NegotiationService.
var _ domain.NegotiationService = (*Service)(nil)

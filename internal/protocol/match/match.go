package match

import "sealbid/internal/domain"

// State is the per-session position in the reveal state machine. It is
// derived from the session record, never stored, and never moves backward.
type State int

const (
	// StateCreated: buyer committed, no seller bound yet.
	StateCreated State = iota
	// StateJoined: seller bound, neither party revealed.
	StateJoined
	// StatePartialReveal: exactly one of buyer/seller revealed.
	StatePartialReveal
	// StateFullyRevealed: both revealed; the match is decided and final.
	StateFullyRevealed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateJoined:
		return "joined"
	case StatePartialReveal:
		return "partial-reveal"
	case StateFullyRevealed:
		return "fully-revealed"
	default:
		return "unknown"
	}
}

// StateOf derives the reveal state from a session record.
func StateOf(s domain.Session) State {
	switch {
	case !s.Joined():
		return StateCreated
	case s.BuyerRevealed && s.SellerRevealed:
		return StateFullyRevealed
	case s.BuyerRevealed || s.SellerRevealed:
		return StatePartialReveal
	default:
		return StateJoined
	}
}

// Evaluate applies the deterministic matching rule to two revealed prices:
// the deal clears iff the buyer's bid covers the seller's ask, ties
// included, and settles at the seller's ask. Callers invoke it exactly once
// per session, on the transition that makes both reveal flags true.
func Evaluate(buyer, seller domain.Price) (matched bool, settlement domain.Price) {
	if buyer >= seller {
		return true, seller
	}
	return false, 0
}

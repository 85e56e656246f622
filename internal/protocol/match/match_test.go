package match_test

import (
	"testing"

	"sealbid/internal/domain"
	"sealbid/internal/protocol/match"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		buyer      domain.Price
		seller     domain.Price
		matched    bool
		settlement domain.Price
	}{
		{"bid above ask", 100, 80, true, 80},
		{"bid below ask", 50, 80, false, 0},
		{"tie matches", 80, 80, true, 80},
		{"zero ask", 1, 0, true, 0},
		{"both zero", 0, 0, true, 0},
		{"max bid", 1<<32 - 1, 1, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, settlement := match.Evaluate(tt.buyer, tt.seller)
			if matched != tt.matched || settlement != tt.settlement {
				t.Fatalf("Evaluate(%d, %d) = (%v, %d), want (%v, %d)",
					tt.buyer, tt.seller, matched, settlement, tt.matched, tt.settlement)
			}
		})
	}
}

func TestStateOf(t *testing.T) {
	buyer := domain.PartyID{1}
	seller := domain.PartyID{2}

	s := domain.Session{Buyer: buyer, CreatedUTC: 1}
	if got := match.StateOf(s); got != match.StateCreated {
		t.Fatalf("unjoined session: got %v", got)
	}

	s.Seller = seller
	if got := match.StateOf(s); got != match.StateJoined {
		t.Fatalf("joined session: got %v", got)
	}

	s.SellerRevealed = true
	if got := match.StateOf(s); got != match.StatePartialReveal {
		t.Fatalf("one reveal: got %v", got)
	}

	s.BuyerRevealed = true
	if got := match.StateOf(s); got != match.StateFullyRevealed {
		t.Fatalf("both revealed: got %v", got)
	}
}

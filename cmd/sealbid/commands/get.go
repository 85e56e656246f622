package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealbid/internal/crypto"
	"sealbid/internal/domain"
)

// getCmd prints the full projection of one session.
func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session's full state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := crypto.ParseSessionID(args[0])
			if err != nil {
				return err
			}
			s, err := appCtx.API.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching session %s: %w", id, err)
			}

			fmt.Printf("Session   %s\n", s.ID)
			fmt.Printf("State     %s\n", s.State)
			fmt.Printf("Buyer     %s\n", s.Buyer)
			if s.Joined() {
				fmt.Printf("Seller    %s\n", s.Seller)
			} else {
				fmt.Printf("Seller    (not joined)\n")
			}
			fmt.Printf("Bid       %s\n", priceLine(s.PublicBuyerPrice, s.BuyerRevealed))
			fmt.Printf("Ask       %s\n", priceLine(s.PublicSellerPrice, s.SellerRevealed))
			fmt.Printf("Matched   %v\n", s.DealMatched)
			return nil
		},
	}
}

func priceLine(price domain.Price, revealed bool) string {
	if revealed {
		return fmt.Sprintf("%d (revealed)", price)
	}
	return fmt.Sprintf("%d (provisional)", price)
}

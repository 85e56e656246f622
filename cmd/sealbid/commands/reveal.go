package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sealbid/internal/crypto"
	"sealbid/internal/server"
)

// revealBuyerCmd proves the buyer's committed bid in the clear.
func revealBuyerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-buyer <session-id>",
		Short: "Reveal the buyer's committed bid under decryption proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReveal(cmd.Context(), args[0], true)
		},
	}
}

// revealSellerCmd proves the seller's committed ask in the clear.
func revealSellerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-seller <session-id>",
		Short: "Reveal the seller's committed ask under decryption proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReveal(cmd.Context(), args[0], false)
		},
	}
}

func runReveal(ctx context.Context, rawID string, asBuyer bool) error {
	if err := requireParty(); err != nil {
		return err
	}
	id, err := crypto.ParseSessionID(rawID)
	if err != nil {
		return err
	}

	prices, err := appCtx.API.EncryptedPrices(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching handles for %s: %w", id, err)
	}
	handle := prices.Seller
	if asBuyer {
		handle = prices.Buyer
	}
	if handle.IsZero() {
		return fmt.Errorf("session %s has no committed ciphertext for this role", id)
	}

	// The coprocessor releases the clear value together with the proof
	// that it matches the committed ciphertext.
	clear, proof, err := appCtx.Vault.Prove(ctx, handle)
	if err != nil {
		return fmt.Errorf("deriving decryption proof: %w", err)
	}

	req := server.RevealRequest{Requester: appCtx.Party, Clear: clear, Proof: proof}
	var out server.RevealResponse
	if asBuyer {
		out, err = appCtx.API.RevealBuyer(ctx, id, req)
	} else {
		out, err = appCtx.API.RevealSeller(ctx, id, req)
	}
	if err != nil {
		return fmt.Errorf("revealing: %w", err)
	}

	fmt.Printf("Revealed %d on %s\n", out.Price, id)
	if out.Final {
		if out.DealMatched {
			fmt.Println("Deal matched.")
		} else {
			fmt.Println("No match; session is final.")
		}
	}
	return nil
}

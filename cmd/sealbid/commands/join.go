package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealbid/internal/crypto"
	"sealbid/internal/domain"
	"sealbid/internal/server"
)

// joinCmd commits the seller's encrypted ask into an open session.
func joinCmd() *cobra.Command {
	var provisionalSeller uint32

	cmd := &cobra.Command{
		Use:   "join <session-id> <ask>",
		Short: "Join a session as seller with an encrypted ask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireParty(); err != nil {
				return err
			}
			id, err := crypto.ParseSessionID(args[0])
			if err != nil {
				return err
			}
			price, err := parsePrice(args[1])
			if err != nil {
				return err
			}

			ct, proof, err := appCtx.Vault.Encrypt(cmd.Context(), price)
			if err != nil {
				return fmt.Errorf("sealing ask: %w", err)
			}

			if err := appCtx.API.Join(cmd.Context(), id, server.JoinRequest{
				Requester:         appCtx.Party,
				Ciphertext:        ct,
				Proof:             proof,
				ProvisionalSeller: domain.Price(provisionalSeller),
			}); err != nil {
				return fmt.Errorf("joining session %s: %w", id, err)
			}

			fmt.Printf("Joined %s as seller %s\n", id, appCtx.Party)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&provisionalSeller, "provisional-ask", 0, "public provisional ask (untrusted until reveal)")
	return cmd
}

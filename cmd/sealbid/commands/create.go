package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sealbid/internal/domain"
	"sealbid/internal/server"
)

// createCmd commits the buyer's encrypted bid and opens a session.
func createCmd() *cobra.Command {
	var provisionalBuyer, provisionalSeller uint32

	cmd := &cobra.Command{
		Use:   "create <bid>",
		Short: "Open a session with an encrypted buyer bid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireParty(); err != nil {
				return err
			}
			price, err := parsePrice(args[0])
			if err != nil {
				return err
			}

			// The coprocessor seals the bid; the daemon only ever sees the
			// ciphertext and its inclusion proof.
			ct, proof, err := appCtx.Vault.Encrypt(cmd.Context(), price)
			if err != nil {
				return fmt.Errorf("sealing bid: %w", err)
			}

			id, err := appCtx.API.Create(cmd.Context(), server.CreateRequest{
				Requester:         appCtx.Party,
				Ciphertext:        ct,
				Proof:             proof,
				ProvisionalBuyer:  domain.Price(provisionalBuyer),
				ProvisionalSeller: domain.Price(provisionalSeller),
			})
			if err != nil {
				return fmt.Errorf("creating session: %w", err)
			}

			fmt.Printf("Session %s created. Buyer=%s\n", id, appCtx.Party)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&provisionalBuyer, "provisional-bid", 0, "public provisional bid (untrusted until reveal)")
	cmd.Flags().Uint32Var(&provisionalSeller, "provisional-ask", 0, "public provisional ask (untrusted until reveal)")
	return cmd
}

func parsePrice(s string) (domain.Price, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", s, err)
	}
	return domain.Price(v), nil
}

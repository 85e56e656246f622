package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealbid/internal/app"
	"sealbid/internal/crypto"
	"sealbid/internal/domain"
)

var (
	serverURL string
	party     string
	appCtx    *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sealbid",
		Short: "Confidential two-party price negotiation CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// --party is optional for read-only commands.
			var id domain.PartyID
			if party != "" {
				var err error
				if id, err = crypto.ParsePartyID(party); err != nil {
					return err
				}
			}
			appCtx = app.NewApp(serverURL, id)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8537", "sealbidd base URL")
	root.PersistentFlags().StringVarP(&party, "party", "P", "", "acting party: a name or a 64-char hex id")

	root.AddCommand(
		createCmd(), joinCmd(),
		revealBuyerCmd(), revealSellerCmd(),
		getCmd(), listCmd(), eventsCmd(), statusCmd(),
	)
	return root.Execute()
}

// requireParty guards the state-changing commands.
func requireParty() error {
	if appCtx.Party.IsZero() {
		return fmt.Errorf("no acting party; pass --party")
	}
	return nil
}

package commands

import (
	"fmt"
	"os"

	"github.com/markkurossi/tabulate"
	"github.com/spf13/cobra"
)

// listCmd renders every session in creation order.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sessions in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := appCtx.API.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
			if len(ids) == 0 {
				fmt.Println("No sessions.")
				return nil
			}

			tab := tabulate.New(tabulate.UnicodeLight)
			tab.Header("#").SetAlign(tabulate.MR)
			tab.Header("Session").SetAlign(tabulate.ML)
			tab.Header("State").SetAlign(tabulate.ML)
			tab.Header("Matched").SetAlign(tabulate.ML)

			for i, id := range ids {
				s, err := appCtx.API.Get(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("fetching session %s: %w", id, err)
				}
				row := tab.Row()
				row.Column(fmt.Sprintf("%d", i+1))
				row.Column(id.String())
				row.Column(s.State)
				row.Column(fmt.Sprintf("%v", s.DealMatched))
			}
			tab.Print(os.Stdout)
			return nil
		},
	}
}

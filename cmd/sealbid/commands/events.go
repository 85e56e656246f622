package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/markkurossi/tabulate"
	"github.com/spf13/cobra"

	"sealbid/internal/crypto"
)

// eventsCmd renders the append-only transition log.
func eventsCmd() *cobra.Command {
	var since uint64

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the protocol event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := appCtx.API.Events(cmd.Context(), since)
			if err != nil {
				return fmt.Errorf("fetching events: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No events.")
				return nil
			}

			tab := tabulate.New(tabulate.UnicodeLight)
			tab.Header("Seq").SetAlign(tabulate.MR)
			tab.Header("At").SetAlign(tabulate.ML)
			tab.Header("Kind").SetAlign(tabulate.ML)
			tab.Header("Session").SetAlign(tabulate.ML)
			tab.Header("Party").SetAlign(tabulate.ML)
			tab.Header("Price").SetAlign(tabulate.MR)

			for _, ev := range events {
				row := tab.Row()
				row.Column(fmt.Sprintf("%d", ev.Seq))
				row.Column(time.Unix(0, ev.At).UTC().Format(time.RFC3339))
				row.Column(ev.Kind.String())
				row.Column(crypto.Fingerprint(ev.Session[:]))
				if ev.Party.IsZero() {
					row.Column("")
				} else {
					row.Column(crypto.Fingerprint(ev.Party[:]))
				}
				row.Column(fmt.Sprintf("%d", ev.Price))
			}
			tab.Print(os.Stdout)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&since, "since", 0, "only events after this sequence number")
	return cmd
}

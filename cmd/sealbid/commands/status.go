package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd probes daemon liveness.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the daemon is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !appCtx.API.IsAvailable(cmd.Context()) {
				return fmt.Errorf("daemon at %s is not available", serverURL)
			}
			fmt.Println("Available.")
			return nil
		},
	}
}

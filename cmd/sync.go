package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd/config"
)

// NewSyncCmd creates the `sync` subcommand.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Export notes and sync the mirror with git",
		Long: `Writes every note to the markdown mirror, commits any changes, and
pushes to the origin remote when one is configured. Network failures are
reported but do not fail the command; the commit still lands locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.InitWorkspace()
			if err != nil {
				return err
			}
			defer mgr.Close()

			result, err := mgr.Sync()
			if err != nil {
				return err
			}

			switch {
			case result.Committed && result.Pushed:
				fmt.Println("Committed and pushed.")
			case result.Committed:
				fmt.Println("Committed locally.")
			default:
				fmt.Println("Nothing to sync.")
			}
			if result.Err != "" {
				fmt.Printf("Warning: %s\n", result.Err)
			}
			return nil
		},
	}
	return cmd
}

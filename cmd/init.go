package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd/config"
	"github.com/textoc/textoc/pkg/gitsync"
	"github.com/textoc/textoc/pkg/store"
)

// NewInitCmd creates the `init` subcommand.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the database and notes repository",
		Long: `Creates the database if it does not exist and initializes a git
repository in the notes directory. Safe to run more than once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := filepath.Join(config.DataDir(), "textoc.db")
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}
			defer st.Close()

			notesDir := config.NotesDir()
			syncer := gitsync.New(notesDir, config.NewLogger())
			if err := syncer.Init(); err != nil {
				return fmt.Errorf("initialize notes repository: %w", err)
			}

			fmt.Printf("Database: %s\n", dbPath)
			fmt.Printf("Notes:    %s\n", notesDir)
			return nil
		},
	}
	return cmd
}

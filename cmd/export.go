package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd/config"
)

// NewExportCmd creates the `export` subcommand.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every note to the markdown mirror",
		Long: `Writes each note as a markdown file with a YAML header into the notes
directory. Existing files are replaced; files for deleted notes are not
touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.InitWorkspace()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.ExportAll(); err != nil {
				return err
			}
			fmt.Printf("Exported %d notes to %s\n", len(mgr.AllNotes()), config.NotesDir())
			return nil
		},
	}
	return cmd
}

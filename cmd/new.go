package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd/config"
)

// NewNewCmd creates the `new` subcommand.
func NewNewCmd() *cobra.Command {
	var (
		notebookName string
		tagNames     []string
		fromStdin    bool
	)

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new note",
		Long: `Create a note in the database and select it.

Examples:
  textoc new "meeting notes"
  textoc new -b work "standup"        # file into the 'work' notebook
  textoc new -t idea "weekend hack"   # attach the 'idea' tag
  echo "quick thought" | textoc new   # content from stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.InitWorkspace()
			if err != nil {
				return err
			}
			defer mgr.Close()

			var title string
			if len(args) > 0 {
				title = args[0]
			}

			if !cmd.Flags().Changed("stdin") {
				stat, err := os.Stdin.Stat()
				if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}

			var content string
			if fromStdin {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}

			if notebookName != "" {
				found := false
				for _, nb := range mgr.Notebooks() {
					if nb.Name == notebookName {
						mgr.SelectNotebook(nb.ID)
						found = true
						break
					}
				}
				if !found {
					nb, err := mgr.CreateNotebook(notebookName, "")
					if err != nil {
						return fmt.Errorf("create notebook: %w", err)
					}
					mgr.SelectNotebook(nb.ID)
				}
			}

			note, err := mgr.CreateNote(title, content)
			if err != nil {
				return err
			}

			for _, name := range tagNames {
				tag, err := mgr.CreateTag(name)
				if err != nil {
					return fmt.Errorf("create tag %q: %w", name, err)
				}
				if err := mgr.TagNote(note.ID, tag.ID); err != nil {
					return fmt.Errorf("tag note: %w", err)
				}
			}

			fmt.Printf("Created note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&notebookName, "notebook", "b", "", "Notebook to file the note into (created if missing)")
	cmd.Flags().StringSliceVarP(&tagNames, "tag", "t", nil, "Tags to attach (repeatable)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read content from stdin (auto-detected when piped)")

	return cmd
}

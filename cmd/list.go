package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd/config"
	"github.com/textoc/textoc/pkg/models"
	"github.com/textoc/textoc/pkg/workspace"
)

// NewListCmd creates the `list` subcommand.
func NewListCmd() *cobra.Command {
	var (
		listNotebook string
		listTag      string
		listJSON     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List notes",
		Aliases: []string{"ls"},
		Long: `List notes, newest first.

Examples:
  textoc list                # all notes
  textoc list -b work        # notes in the 'work' notebook
  textoc list -t idea        # notes tagged 'idea'
  textoc list --json         # machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.InitWorkspace()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if listNotebook != "" {
				id, err := notebookIDByName(mgr, listNotebook)
				if err != nil {
					return err
				}
				mgr.SelectNotebook(id)
			}
			if listTag != "" {
				id, err := tagIDByName(mgr, listTag)
				if err != nil {
					return err
				}
				mgr.SelectTag(id)
			}

			notes := mgr.Notes()
			if len(notes) == 0 {
				if listJSON {
					fmt.Println("[]")
				} else {
					fmt.Println("No notes found.")
				}
				return nil
			}

			if listJSON {
				return outputJSON(notes)
			}
			printNotesTable(mgr, notes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listNotebook, "notebook", "b", "", "Only notes in this notebook")
	cmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only notes with this tag")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	return cmd
}

func notebookIDByName(mgr *workspace.Manager, name string) (string, error) {
	for _, nb := range mgr.Notebooks() {
		if nb.Name == name {
			return nb.ID, nil
		}
	}
	return "", fmt.Errorf("no notebook named %q", name)
}

func tagIDByName(mgr *workspace.Manager, name string) (string, error) {
	for _, tag := range mgr.Tags() {
		if tag.Name == name {
			return tag.ID, nil
		}
	}
	return "", fmt.Errorf("no tag named %q", name)
}

func outputJSON(notes []*models.Note) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(notes)
}

func printNotesTable(mgr *workspace.Manager, notes []*models.Note) {
	notebookNames := make(map[string]string)
	for _, nb := range mgr.Notebooks() {
		notebookNames[nb.ID] = nb.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tNOTEBOOK\tTAGS\tUPDATED")
	for _, note := range notes {
		title := note.Title
		if title == "" {
			title = "Untitled Note"
		}
		var tagNames []string
		for _, tag := range mgr.TagsForNote(note.ID) {
			tagNames = append(tagNames, tag.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			title,
			notebookNames[note.NotebookID],
			strings.Join(tagNames, ","),
			note.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
}

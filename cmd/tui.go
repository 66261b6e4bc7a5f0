package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd/config"
	"github.com/textoc/textoc/internal/tui"
)

// NewTuiCmd creates the `textoc tui` command.
func NewTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive workspace",
		Long: `Launch the interactive terminal workspace: notebook sidebar, note list,
and editor panes backed by the local database and markdown mirror.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("tui mode requires an interactive terminal")
			}

			mgr, err := config.InitWorkspace()
			if err != nil {
				return err
			}
			defer mgr.Close()

			p := tea.NewProgram(tui.New(mgr), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running tui: %w", err)
			}
			return nil
		},
	}
	return cmd
}

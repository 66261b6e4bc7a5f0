package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/textoc/textoc/cmd"
	"github.com/textoc/textoc/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "textoc",
		Short: "A notebook-oriented note-taking workspace",
		Long: `textoc keeps notes in a local database, mirrors them to a folder of
markdown files, and syncs that folder with git. Run without arguments to
open the interactive workspace.`,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.NewTuiCmd().RunE(c, args)
		},
		SilenceUsage: true,
	}

	cobra.OnInitialize(config.InitConfig)
	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewTuiCmd())
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewNewCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewExportCmd())
	rootCmd.AddCommand(cmd.NewSyncCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

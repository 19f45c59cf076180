// Package cmd provides Cobra CLI commands for paneshell.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/paneshell/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "paneshell",
		Short: "Headless browser chrome driven by commands",
		Long: `Paneshell - windows of stacked browser panes, driven from a command bar.

Each window has an address bar, a pane container and a command bar. Panes
stack inside the container and exactly one of them is shown at a time. New
panes look up a compiled content filter before they are inserted.

Use 'paneshell shell' for an interactive prompt, or 'paneshell run' to
execute a command script.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// needsApp reports whether cmd drives windows or sessions. Help and config
// inspection run without building the chrome.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", "config":
			return false
		}
	}
	return true
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

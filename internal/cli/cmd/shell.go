package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/paneshell/internal/cli/model"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive command prompt",
	Long: `Open an interactive prompt. Every line runs as a command-bar command
against the focused window, and the window tree is redrawn after each one.

Press F1 to list the available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	m := model.NewShellModel(app.Ctx(), app.Theme, app)
	_, err := tea.NewProgram(m).Run()
	return err
}

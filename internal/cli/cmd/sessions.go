package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/paneshell/internal/cli/styles"
	"github.com/bnema/paneshell/internal/domain/entity"
)

const defaultSessionsLimit = 20

var (
	sessionsJSON  bool
	sessionsLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved sessions",
	Long: `List, restore and delete saved session snapshots.

Snapshots are written by 'paneshell run --save' and, when session.auto_save
is enabled, after every command.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsRestoreCmd = &cobra.Command{
	Use:   "restore <session-id>",
	Short: "Reopen the windows of a saved session and print them",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsRestore,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsRestoreCmd, sessionsDeleteCmd)
	sessionsListCmd.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
	sessionsListCmd.Flags().IntVar(&sessionsLimit, "limit", defaultSessionsLimit, "maximum sessions to show")
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sessions, err := app.ListSessions.Execute(app.Ctx(), sessionsLimit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if sessionsJSON {
		return outputSessionsJSON(cmd.OutOrStdout(), sessions)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), styles.NewSessionsRenderer(app.Theme).RenderList(sessions))
	return nil
}

func outputSessionsJSON(w io.Writer, sessions []entity.SessionInfo) error {
	if sessions == nil {
		sessions = []entity.SessionInfo{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessions)
}

func runSessionsRestore(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sessionID := entity.SessionID(args[0])
	if _, err := app.RestoreSession(app.Ctx(), sessionID); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, styles.NewSessionsRenderer(app.Theme).RenderRestored(sessionID))
	app.RenderTree(out)
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sessionID := entity.SessionID(args[0])
	if err := app.Restore.DeleteSnapshot(app.Ctx(), sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), styles.NewSessionsRenderer(app.Theme).RenderDeleted(sessionID))
	return nil
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/paneshell/internal/cli/styles"
)

var (
	runKeepGoing bool
	runSave      bool
	runQuiet     bool
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a command script",
	Long: `Execute one command per line, then print the resulting window tree.

Blank lines and lines starting with '#' are ignored. Use '-' to read the
script from standard input.

Example script:
  window open
  open https://go.dev
  pane add
  pane focus 0`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false, "continue after a failing line")
	runCmd.Flags().BoolVar(&runSave, "save", false, "save a session snapshot when done")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "do not print the window tree")
}

// scriptLine is one executable line of a script with its 1-based position.
type scriptLine struct {
	Number int
	Text   string
}

func readScript(r io.Reader) ([]scriptLine, error) {
	var lines []scriptLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, scriptLine{Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return lines, nil
}

func openScript(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runRun(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	f, err := openScript(args[0])
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	lines, err := readScript(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := styles.NewSessionsRenderer(app.Theme)
	ctx := app.Ctx()

	var failed int
	for _, line := range lines {
		if execErr := app.Exec(ctx, line.Text); execErr != nil {
			failed++
			lineErr := fmt.Errorf("line %d: %q: %w", line.Number, line.Text, execErr)
			if !runKeepGoing {
				return lineErr
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderError(lineErr))
		}
	}

	if runSave {
		if _, err := app.SaveSnapshot(ctx); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		_, _ = fmt.Fprintf(out, "saved session %s\n", app.SessionID)
	}

	if !runQuiet {
		app.RenderTree(out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, len(lines))
	}
	return nil
}

// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/paneshell/internal/cli/command"
	"github.com/bnema/paneshell/internal/cli/styles"
	"github.com/bnema/paneshell/internal/domain/entity"
)

const maxShellOutput = 8

// ShellRunner executes command lines and exposes the resulting windows.
// Both methods are called from the Bubble Tea event loop goroutine only.
type ShellRunner interface {
	Exec(ctx context.Context, line string) error
	Tree() *entity.SessionState
}

type shellKeyMap struct {
	Submit key.Binding
	Prev   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k shellKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Prev, k.Help, k.Quit}
}

func (k shellKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Prev}, {k.Help, k.Quit}}
}

func defaultShellKeyMap() shellKeyMap {
	return shellKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous command")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "commands")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShellModel is an interactive prompt whose lines run as command-bar
// commands against the focused window. The window tree is redrawn after
// every command.
type ShellModel struct {
	ctx    context.Context
	runner ShellRunner
	theme  *styles.Theme
	tree   *styles.TreeRenderer

	input    textinput.Model
	help     help.Model
	keys     shellKeyMap
	history  []string
	output   []string
	showHelp bool
	quitting bool
}

// NewShellModel creates the shell.
func NewShellModel(ctx context.Context, theme *styles.Theme, runner ShellRunner) ShellModel {
	input := textinput.New()
	input.Placeholder = "window open"
	input.Prompt = theme.Prompt.Render("> ")
	input.Focus()

	return ShellModel{
		ctx:    ctx,
		runner: runner,
		theme:  theme,
		tree:   styles.NewTreeRenderer(theme),
		input:  input,
		help:   help.New(),
		keys:   defaultShellKeyMap(),
	}
}

// Init implements tea.Model.
func (m ShellModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if len(m.history) > 0 {
				m.input.SetValue(m.history[len(m.history)-1])
				m.input.CursorEnd()
			}
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ShellModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	switch line {
	case "quit", "exit":
		m.quitting = true
		return m, tea.Quit
	}

	m.history = append(m.history, line)
	if err := m.runner.Exec(m.ctx, line); err != nil {
		m.appendOutput(fmt.Sprintf("%s %s", m.theme.ErrorStyle.Render(styles.IconX), err))
	} else {
		m.appendOutput(fmt.Sprintf("%s %s", m.theme.SuccessStyle.Render(styles.IconCheck), line))
	}
	return m, nil
}

func (m *ShellModel) appendOutput(line string) {
	m.output = append(m.output, line)
	if len(m.output) > maxShellOutput {
		m.output = m.output[len(m.output)-maxShellOutput:]
	}
}

// View implements tea.Model.
func (m ShellModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Box.Render(m.tree.Render(m.runner.Tree())))
	b.WriteString("\n")

	for _, line := range m.output {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.showHelp {
		for _, usage := range command.Usage {
			b.WriteString(m.theme.Subtle.Render("  " + usage))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// History returns the submitted lines, oldest first.
func (m ShellModel) History() []string {
	return m.history
}

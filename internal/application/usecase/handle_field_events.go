package usecase

import (
	"context"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	domainurl "github.com/bnema/paneshell/internal/domain/url"
	"github.com/bnema/paneshell/internal/logging"
)

// CommandRunner executes a command line typed into a window's command bar.
type CommandRunner interface {
	RunCommand(ctx context.Context, windowIndex int, line string) error
}

// SearchConfig resolves address-bar input that is not a URL.
type SearchConfig struct {
	DefaultSearch string
	Shortcuts     map[string]string
}

// HandleFieldEventsUseCase reacts to submissions in the chrome bars. An
// address-bar submission loads into the window's focused pane (opening one
// if the window has none); a command-bar submission is handed to the
// CommandRunner and the bar is cleared.
type HandleFieldEventsUseCase struct {
	ctx      context.Context
	registry *WindowRegistry
	panes    *ManagePanesUseCase
	fields   *ChromeFieldsUseCase
	search   SearchConfig
	commands CommandRunner
}

// NewHandleFieldEventsUseCase creates the handler. ctx carries the logger used
// for events, which arrive outside any request scope.
func NewHandleFieldEventsUseCase(
	ctx context.Context,
	registry *WindowRegistry,
	panes *ManagePanesUseCase,
	fields *ChromeFieldsUseCase,
	search SearchConfig,
) *HandleFieldEventsUseCase {
	return &HandleFieldEventsUseCase{
		ctx:      logging.WithComponent(ctx, "field-events"),
		registry: registry,
		panes:    panes,
		fields:   fields,
		search:   search,
	}
}

// SetCommandRunner installs the command-bar target. The runner usually
// depends on the window use case, which depends on this handler through the
// chrome builder, so it is wired after construction.
func (uc *HandleFieldEventsUseCase) SetCommandRunner(runner CommandRunner) {
	uc.commands = runner
}

// SetSearchConfig replaces the search template and bang shortcuts.
func (uc *HandleFieldEventsUseCase) SetSearchConfig(search SearchConfig) {
	uc.search = search
}

// HandleFieldEvent implements port.FieldHandler.
func (uc *HandleFieldEventsUseCase) HandleFieldEvent(event port.FieldEvent) {
	if event.Kind != port.FieldSubmitted {
		return
	}
	index, ok := uc.registry.IndexOf(event.WindowID)
	if !ok {
		return
	}
	ctx := logging.WithWindowIndex(uc.ctx, index)

	switch event.Region {
	case entity.AddressBar:
		uc.Navigate(ctx, index, event.Text)
	case entity.CommandBar:
		uc.runCommand(ctx, event.WindowID, index, event.Text)
	}
}

// Navigate resolves input and loads it into the focused pane of the window.
// It returns the pending insertion when a new pane had to be opened.
func (uc *HandleFieldEventsUseCase) Navigate(ctx context.Context, windowIndex int, input string) *PendingPane {
	uri := domainurl.Resolve(input, uc.search.Shortcuts, uc.search.DefaultSearch)
	if uri == "" {
		return nil
	}
	uc.fields.SetAddressText(windowIndex, uri)

	if pane, ok := uc.panes.At(windowIndex, uc.panes.FocusedIndex(windowIndex)); ok && !pane.IsHidden() {
		pane.LoadURI(uri)
		logging.FromContext(ctx).Debug().Str("uri", uri).Msg("navigating focused pane")
		return nil
	}
	logging.FromContext(ctx).Debug().Str("uri", uri).Msg("no visible pane, opening one")
	return uc.panes.OpenURI(ctx, windowIndex, uri)
}

func (uc *HandleFieldEventsUseCase) runCommand(ctx context.Context, windowID string, windowIndex int, line string) {
	log := logging.FromContext(ctx)
	if uc.commands == nil {
		log.Debug().Str("line", line).Msg("no command runner installed")
		return
	}
	if err := uc.commands.RunCommand(ctx, windowIndex, line); err != nil {
		log.Warn().Err(err).Str("line", line).Msg("command failed")
		return
	}
	// The command may have closed or reordered windows.
	if index, ok := uc.registry.IndexOf(windowID); ok {
		uc.fields.SetCommandText(index, "")
	}
}

var _ port.FieldHandler = (*HandleFieldEventsUseCase)(nil)

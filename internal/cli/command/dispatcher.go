// Package command parses the textual commands typed into a window's command
// bar (or fed from a script) and maps them onto the window and pane use cases.
package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/paneshell/internal/application/usecase"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/logging"
)

var (
	// ErrUnknownCommand is returned for a verb the dispatcher does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a known command has malformed arguments.
	ErrUsage = errors.New("invalid arguments")
)

// Usage lists every command understood by the dispatcher.
var Usage = []string{
	"window open",
	"window close [w]",
	"window focus <w>",
	"window show [w]",
	"window hide [w]",
	"window resize <width> <height> [w]",
	"window title <text>",
	"pane add [w]",
	"pane focus [w] <i>",
	"pane remove [w] <i>",
	"open <uri>",
	"go <url or search>",
	"bar address|command <text>",
}

// Dispatcher runs command lines against the core use cases. Every command
// addresses windows and panes by index and inherits the no-op semantics of
// the use cases for indices that do not resolve.
type Dispatcher struct {
	windows *usecase.ManageWindowsUseCase
	panes   *usecase.ManagePanesUseCase
	fields  *usecase.ChromeFieldsUseCase
	events  *usecase.HandleFieldEventsUseCase

	onChange func()

	mu      sync.Mutex
	pending []*usecase.PendingPane
}

// NewDispatcher creates a dispatcher. onChange, when non-nil, runs after every
// command that succeeded and again when a pane insertion it started completes.
func NewDispatcher(
	windows *usecase.ManageWindowsUseCase,
	panes *usecase.ManagePanesUseCase,
	fields *usecase.ChromeFieldsUseCase,
	events *usecase.HandleFieldEventsUseCase,
	onChange func(),
) *Dispatcher {
	return &Dispatcher{
		windows:  windows,
		panes:    panes,
		fields:   fields,
		events:   events,
		onChange: onChange,
	}
}

// RunCommand implements usecase.CommandRunner. windowIndex is the window the
// command was typed in; commands without an explicit window target it.
func (d *Dispatcher) RunCommand(ctx context.Context, windowIndex int, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	logging.FromContext(ctx).Debug().Str("line", line).Int("window", windowIndex).Msg("running command")

	var err error
	switch args[0] {
	case "window":
		err = d.window(ctx, windowIndex, args[1:])
	case "pane":
		err = d.pane(ctx, windowIndex, args[1:])
	case "open":
		if len(args) != 2 {
			return usage("open <uri>")
		}
		d.track(d.panes.OpenURI(ctx, windowIndex, args[1]))
	case "go":
		if len(args) < 2 {
			return usage("go <url or search>")
		}
		d.track(d.events.Navigate(ctx, windowIndex, strings.Join(args[1:], " ")))
	case "bar":
		err = d.bar(windowIndex, args[1:])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	if err != nil {
		return err
	}

	if d.onChange != nil {
		d.onChange()
	}
	return nil
}

func (d *Dispatcher) window(ctx context.Context, current int, args []string) error {
	if len(args) == 0 {
		return usage("window <open|close|focus|show|hide|resize|title>")
	}

	switch args[0] {
	case "open":
		opened, err := d.windows.Open(ctx)
		if err != nil {
			return err
		}
		d.track(opened.Pending)
	case "close":
		index, err := optionalIndex(args[1:], current)
		if err != nil {
			return err
		}
		d.windows.Close(ctx, index)
	case "focus":
		if len(args) != 2 {
			return usage("window focus <w>")
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		d.windows.Focus(ctx, index)
	case "show", "hide":
		index, err := optionalIndex(args[1:], current)
		if err != nil {
			return err
		}
		d.windows.Toggle(ctx, index, args[0] == "show")
	case "resize":
		if len(args) != 3 && len(args) != 4 {
			return usage("window resize <width> <height> [w]")
		}
		width, err := parseSize(args[1])
		if err != nil {
			return err
		}
		height, err := parseSize(args[2])
		if err != nil {
			return err
		}
		index, err := optionalIndex(args[3:], current)
		if err != nil {
			return err
		}
		d.windows.Resize(ctx, index, width, height)
	case "title":
		if len(args) < 2 {
			return usage("window title <text>")
		}
		d.windows.SetTitle(current, strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("%w: window %q", ErrUnknownCommand, args[0])
	}
	return nil
}

func (d *Dispatcher) pane(ctx context.Context, current int, args []string) error {
	if len(args) == 0 {
		return usage("pane <add|focus|remove>")
	}

	switch args[0] {
	case "add":
		index, err := optionalIndex(args[1:], current)
		if err != nil {
			return err
		}
		d.track(d.panes.AddAndFocus(ctx, index))
	case "focus", "remove":
		window, pane, err := paneTarget(args[1:], current)
		if err != nil {
			return err
		}
		if args[0] == "focus" {
			d.panes.Focus(ctx, window, pane)
		} else {
			d.panes.Remove(ctx, window, pane)
		}
	default:
		return fmt.Errorf("%w: pane %q", ErrUnknownCommand, args[0])
	}
	return nil
}

func (d *Dispatcher) bar(current int, args []string) error {
	if len(args) == 0 {
		return usage("bar address|command <text>")
	}

	region, ok := entity.ParseChromeRegion(args[0])
	if !ok || !region.IsTextField() {
		return usage("bar address|command <text>")
	}
	d.fields.SetText(current, region, strings.Join(args[1:], " "))
	return nil
}

// TakePending returns the pane insertions started since the last call.
func (d *Dispatcher) TakePending() []*usecase.PendingPane {
	d.mu.Lock()
	defer d.mu.Unlock()
	pending := d.pending
	d.pending = nil
	return pending
}

func (d *Dispatcher) track(p *usecase.PendingPane) {
	if p == nil {
		return
	}
	d.mu.Lock()
	d.pending = append(d.pending, p)
	d.mu.Unlock()

	// The pane only exists once the insertion completes.
	if d.onChange != nil {
		p.Then(func(usecase.PaneResult) { d.onChange() })
	}
}

func usage(form string) error {
	return fmt.Errorf("%w: usage: %s", ErrUsage, form)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", ErrUsage, s)
	}
	return n, nil
}

func parseSize(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive size", ErrUsage, s)
	}
	return f, nil
}

func optionalIndex(args []string, current int) (int, error) {
	switch len(args) {
	case 0:
		return current, nil
	case 1:
		return parseIndex(args[0])
	default:
		return 0, fmt.Errorf("%w: too many arguments", ErrUsage)
	}
}

// paneTarget reads "<i>" or "<w> <i>".
func paneTarget(args []string, current int) (window, pane int, err error) {
	switch len(args) {
	case 1:
		pane, err = parseIndex(args[0])
		return current, pane, err
	case 2:
		if window, err = parseIndex(args[0]); err != nil {
			return 0, 0, err
		}
		pane, err = parseIndex(args[1])
		return window, pane, err
	default:
		return 0, 0, usage("pane focus|remove [w] <i>")
	}
}

var _ usecase.CommandRunner = (*Dispatcher)(nil)

package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/logging"
)

// WindowDefaults are the creation parameters of new windows.
type WindowDefaults struct {
	Title   string
	Width   float64
	Height  float64
	Cascade entity.Point
}

// DefaultWindowDefaults returns a 700x700 window cascaded from (20,20).
func DefaultWindowDefaults() WindowDefaults {
	return WindowDefaults{
		Title:   "paneshell",
		Width:   700,
		Height:  700,
		Cascade: entity.Point{X: 20, Y: 20},
	}
}

// OpenedWindow is returned by Open.
type OpenedWindow struct {
	Index   int
	Chrome  port.ChromeHandles
	Pending *PendingPane
}

// ManageWindowsUseCase handles the window lifecycle.
type ManageWindowsUseCase struct {
	registry *WindowRegistry
	chrome   port.ChromeBuilder
	panes    *ManagePanesUseCase
	defaults WindowDefaults
}

// NewManageWindowsUseCase creates a new window lifecycle use case.
func NewManageWindowsUseCase(
	registry *WindowRegistry,
	chrome port.ChromeBuilder,
	panes *ManagePanesUseCase,
	defaults WindowDefaults,
) *ManageWindowsUseCase {
	return &ManageWindowsUseCase{
		registry: registry,
		chrome:   chrome,
		panes:    panes,
		defaults: defaults,
	}
}

// Open creates a window, installs its chrome and starts inserting its first
// pane. No URI is loaded. Only a window server failure is returned.
func (uc *ManageWindowsUseCase) Open(ctx context.Context) (*OpenedWindow, error) {
	log := logging.FromContext(ctx)

	window, err := uc.registry.Server().NewWindow(entity.NewRect(0, 0, uc.defaults.Width, uc.defaults.Height))
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.CascadeTopLeftFromPoint(uc.defaults.Cascade)
	window.Center()
	window.SetTitle(uc.defaults.Title)

	handles := uc.chrome.Build(window)

	index := uc.registry.Count() - 1
	log.Info().
		Int("window_index", index).
		Str("window_id", window.ID()).
		Msg("window opened")

	return &OpenedWindow{
		Index:   index,
		Chrome:  handles,
		Pending: uc.panes.AddAndFocus(ctx, index),
	}, nil
}

// Close destroys the window at index.
func (uc *ManageWindowsUseCase) Close(ctx context.Context, index int) {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return
	}
	window.Close()
	logging.FromContext(ctx).Info().Int("window_index", index).Msg("window closed")
}

// Focus raises the window at index and makes it key.
func (uc *ManageWindowsUseCase) Focus(ctx context.Context, index int) {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return
	}
	window.MakeKeyAndOrderFront()
	logging.FromContext(ctx).Debug().Int("window_index", index).Msg("window focused")
}

// Toggle shows (and focuses) or hides the window at index.
func (uc *ManageWindowsUseCase) Toggle(ctx context.Context, index int, visible bool) {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return
	}
	if visible {
		window.MakeKeyAndOrderFront()
	} else {
		window.OrderOut()
	}
	logging.FromContext(ctx).Debug().
		Int("window_index", index).
		Bool("visible", visible).
		Msg("window visibility toggled")
}

// Resize sets the window's size and keeps its origin.
func (uc *ManageWindowsUseCase) Resize(ctx context.Context, index int, width, height float64) {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return
	}
	window.SetFrame(window.Frame().WithSize(width, height))
	logging.FromContext(ctx).Debug().
		Int("window_index", index).
		Float64("width", width).
		Float64("height", height).
		Msg("window resized")
}

// Title returns the window title, or "" when index does not resolve.
func (uc *ManageWindowsUseCase) Title(index int) string {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return ""
	}
	return window.Title()
}

// SetTitle retitles the window at index.
func (uc *ManageWindowsUseCase) SetTitle(index int, title string) {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return
	}
	window.SetTitle(title)
}

// State returns the lifecycle state of the window at index.
func (uc *ManageWindowsUseCase) State(index int) entity.WindowState {
	window, ok := uc.registry.Resolve(index)
	if !ok {
		return entity.WindowAbsent
	}
	return entity.StateOf(window.IsVisible(), window.IsKey())
}

// Count returns the number of open windows.
func (uc *ManageWindowsUseCase) Count() int { return uc.registry.Count() }

// FocusedIndex returns the index of the key window, or 0.
func (uc *ManageWindowsUseCase) FocusedIndex() int { return uc.registry.FocusedIndex() }

// Defaults returns the parameters used for new windows.
func (uc *ManageWindowsUseCase) Defaults() WindowDefaults { return uc.defaults }

// SetDefaults replaces the parameters used for windows opened from now on.
// Existing windows keep their frame and title.
func (uc *ManageWindowsUseCase) SetDefaults(defaults WindowDefaults) {
	uc.defaults = defaults
}

package usecase

import (
	"context"
	"errors"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/logging"
)

var paneEdges = []entity.Edge{entity.EdgeTop, entity.EdgeBottom, entity.EdgeLeft, entity.EdgeRight}

// ManagePanesUseCase manages the ordered panes of each window's pane container.
// All methods except AddAndFocus and OpenURI must run on the main loop.
type ManagePanesUseCase struct {
	registry   *WindowRegistry
	engine     port.RenderingEngine
	layout     port.LayoutEngine
	filters    port.ContentFilterStore
	scheduler  port.Scheduler
	identifier string
}

// NewManagePanesUseCase creates a new pane management use case.
// filterIdentifier names the content filter every new pane looks up.
func NewManagePanesUseCase(
	registry *WindowRegistry,
	engine port.RenderingEngine,
	layout port.LayoutEngine,
	filters port.ContentFilterStore,
	scheduler port.Scheduler,
	filterIdentifier string,
) *ManagePanesUseCase {
	return &ManagePanesUseCase{
		registry:   registry,
		engine:     engine,
		layout:     layout,
		filters:    filters,
		scheduler:  scheduler,
		identifier: filterIdentifier,
	}
}

// containerAt returns the pane container of the window at windowIndex.
func (uc *ManagePanesUseCase) containerAt(windowIndex int) (port.View, bool) {
	window, ok := uc.registry.Resolve(windowIndex)
	if !ok {
		return nil, false
	}
	return regionView(window, entity.PaneContainer)
}

// regionView returns the content-view child at region's fixed position.
func regionView(window port.NativeWindow, region entity.ChromeRegion) (port.View, bool) {
	content := window.ContentView()
	if content == nil || !region.Valid() {
		return nil, false
	}
	children := content.Children()
	pos := region.Position()
	if pos >= len(children) {
		return nil, false
	}
	return children[pos], true
}

// AddAndFocus starts inserting a new pane into the window at windowIndex and
// returns immediately. The content filter is looked up first; once it
// resolves the insertion runs on the main loop: every existing pane is
// hidden, then a new pane configured with the filter (or none if the lookup
// failed) is appended and pinned to the container's four edges. The lookup
// cannot be cancelled; cancelling ctx has no effect on it.
func (uc *ManagePanesUseCase) AddAndFocus(ctx context.Context, windowIndex int) *PendingPane {
	pending := newPendingPane()
	lookupCtx := logging.WithWindowIndex(context.WithoutCancel(ctx), windowIndex)
	identifier := uc.identifier

	logging.FromContext(lookupCtx).Debug().
		Str("identifier", identifier).
		Msg("looking up content filter for new pane")

	results := uc.filters.Lookup(lookupCtx, identifier)
	go func() {
		result, ok := <-results
		if !ok {
			result = port.FilterResult{Err: errors.New("content filter lookup returned no result")}
		}
		uc.scheduler.Post(func() {
			uc.insert(lookupCtx, windowIndex, identifier, result, pending)
		})
	}()
	return pending
}

func (uc *ManagePanesUseCase) insert(
	ctx context.Context,
	windowIndex int,
	identifier string,
	result port.FilterResult,
	pending *PendingPane,
) {
	log := logging.FromContext(ctx)

	container, ok := uc.containerAt(windowIndex)
	if !ok {
		log.Debug().Msg("window gone before pane insertion, dropping")
		pending.resolve(PaneResult{WindowIndex: windowIndex, PaneIndex: -1, FilterErr: result.Err})
		return
	}

	for _, pane := range container.Children() {
		pane.SetHidden(true)
	}

	var cfg port.WebViewConfig
	switch {
	case errors.Is(result.Err, port.ErrFilteringDisabled):
		log.Debug().Msg("content filtering disabled, pane runs unfiltered")
	case result.Err != nil:
		log.Warn().Err(result.Err).
			Str("identifier", identifier).
			Msg("content filter lookup failed, pane runs unfiltered")
	default:
		cfg.ContentFilter = result.Filter
	}

	webView := uc.engine.NewWebView(cfg)
	webView.SetHidden(false)
	container.AddChild(webView)
	for _, edge := range paneEdges {
		uc.layout.Pin(container, port.Constraint{
			Item:       webView,
			ItemEdge:   edge,
			Target:     container,
			TargetEdge: edge,
		})
	}

	paneIndex := len(container.Children()) - 1
	log.Debug().
		Int("pane_index", paneIndex).
		Bool("filtered", cfg.ContentFilter != nil).
		Msg("pane added and focused")

	pending.resolve(PaneResult{
		WindowIndex: windowIndex,
		PaneIndex:   paneIndex,
		Pane:        webView,
		Filtered:    cfg.ContentFilter != nil,
		Inserted:    true,
		FilterErr:   result.Err,
	})
}

// OpenURI adds and focuses a pane, then loads uri into it once the insertion
// has completed. Nothing is loaded when the window disappeared meanwhile.
func (uc *ManagePanesUseCase) OpenURI(ctx context.Context, windowIndex int, uri string) *PendingPane {
	pending := uc.AddAndFocus(ctx, windowIndex)
	pending.Then(func(result PaneResult) {
		if !result.Inserted {
			return
		}
		result.Pane.LoadURI(uri)
	})
	return pending
}

// Remove detaches the pane at paneIndex. Out-of-range indices are ignored.
// Visibility of the remaining panes is left untouched, so removing the
// visible pane leaves none visible until the next Focus or AddAndFocus.
func (uc *ManagePanesUseCase) Remove(ctx context.Context, windowIndex, paneIndex int) {
	container, ok := uc.containerAt(windowIndex)
	if !ok {
		return
	}
	panes := container.Children()
	if paneIndex < 0 || paneIndex >= len(panes) {
		return
	}
	panes[paneIndex].RemoveFromParent()

	logging.FromContext(ctx).Debug().
		Int("window_index", windowIndex).
		Int("pane_index", paneIndex).
		Int("remaining", len(panes)-1).
		Msg("pane removed")
}

// Focus makes the pane at paneIndex the only visible one. An out-of-range
// paneIndex hides every pane.
func (uc *ManagePanesUseCase) Focus(ctx context.Context, windowIndex, paneIndex int) {
	container, ok := uc.containerAt(windowIndex)
	if !ok {
		return
	}
	panes := container.Children()
	for i, pane := range panes {
		pane.SetHidden(i != paneIndex)
	}

	if paneIndex < 0 || paneIndex >= len(panes) {
		logging.FromContext(ctx).Debug().
			Int("window_index", windowIndex).
			Int("pane_index", paneIndex).
			Msg("focus index out of range, all panes hidden")
	}
}

// Visibility returns the visible flag of each pane in order, or nil when the
// window does not resolve.
func (uc *ManagePanesUseCase) Visibility(windowIndex int) []bool {
	container, ok := uc.containerAt(windowIndex)
	if !ok {
		return nil
	}
	panes := container.Children()
	visible := make([]bool, len(panes))
	for i, pane := range panes {
		visible[i] = !pane.IsHidden()
	}
	return visible
}

// FocusedIndex returns the index of the first visible pane, or 0.
func (uc *ManagePanesUseCase) FocusedIndex(windowIndex int) int {
	return entity.VisibleIndex(uc.Visibility(windowIndex))
}

// Count returns the number of panes, 0 when the window does not resolve.
func (uc *ManagePanesUseCase) Count(windowIndex int) int {
	container, ok := uc.containerAt(windowIndex)
	if !ok {
		return 0
	}
	return len(container.Children())
}

// At returns the pane at paneIndex.
func (uc *ManagePanesUseCase) At(windowIndex, paneIndex int) (port.WebView, bool) {
	container, ok := uc.containerAt(windowIndex)
	if !ok {
		return nil, false
	}
	panes := container.Children()
	if paneIndex < 0 || paneIndex >= len(panes) {
		return nil, false
	}
	webView, ok := panes[paneIndex].(port.WebView)
	return webView, ok
}

// FilterIdentifier returns the content filter new panes look up.
func (uc *ManagePanesUseCase) FilterIdentifier() string { return uc.identifier }

// SetFilterIdentifier changes the content filter looked up by later
// insertions. Lookups already in flight keep the identifier they started with.
func (uc *ManagePanesUseCase) SetFilterIdentifier(identifier string) {
	uc.identifier = identifier
}

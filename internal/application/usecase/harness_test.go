package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/application/usecase"
	"github.com/bnema/paneshell/internal/infrastructure/headless"
	"github.com/bnema/paneshell/internal/logging"
	"github.com/bnema/paneshell/internal/ui/layout"
	"github.com/bnema/paneshell/internal/ui/mainloop"
)

const testFilterID = "filter"

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type stubFilter struct {
	id    string
	rules int
}

func (f stubFilter) Identifier() string { return f.id }
func (f stubFilter) RuleCount() int     { return f.rules }

// readyStore answers every lookup immediately with the same result.
type readyStore struct {
	result port.FilterResult
}

func (s readyStore) Lookup(context.Context, string) <-chan port.FilterResult {
	ch := make(chan port.FilterResult, 1)
	ch <- s.result
	return ch
}

// gatedStore holds every lookup until the test releases it.
type gatedStore struct {
	mu      sync.Mutex
	pending []chan port.FilterResult
}

func (s *gatedStore) Lookup(context.Context, string) <-chan port.FilterResult {
	ch := make(chan port.FilterResult, 1)
	s.mu.Lock()
	s.pending = append(s.pending, ch)
	s.mu.Unlock()
	return ch
}

func (s *gatedStore) release(i int, result port.FilterResult) {
	s.mu.Lock()
	ch := s.pending[i]
	s.mu.Unlock()
	ch <- result
}

func (s *gatedStore) issued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

type harness struct {
	ctx      context.Context
	loop     *mainloop.Loop
	server   *headless.Server
	engine   *headless.Engine
	layout   *headless.LayoutEngine
	registry *usecase.WindowRegistry
	panes    *usecase.ManagePanesUseCase
	fields   *usecase.ChromeFieldsUseCase
	windows  *usecase.ManageWindowsUseCase
}

func newHarness(t *testing.T, store port.ContentFilterStore) *harness {
	t.Helper()
	if store == nil {
		store = readyStore{result: port.FilterResult{Filter: stubFilter{id: testFilterID, rules: 3}}}
	}
	h := &harness{
		ctx:    testContext(),
		loop:   mainloop.New(),
		server: headless.NewServer(),
		engine: headless.NewEngine(),
		layout: headless.NewLayoutEngine(),
	}
	t.Cleanup(h.loop.Close)
	h.wire(store, h.server)
	return h
}

// wire rebuilds the use cases on top of server.
func (h *harness) wire(store port.ContentFilterStore, server port.WindowServer) {
	h.registry = usecase.NewWindowRegistry(server)
	h.panes = usecase.NewManagePanesUseCase(h.registry, h.engine, h.layout, store, h.loop, testFilterID)
	h.fields = usecase.NewChromeFieldsUseCase(h.registry)
	chrome := layout.NewChromeBuilder(headless.WidgetFactory{}, h.layout, 0, nil)
	h.windows = usecase.NewManageWindowsUseCase(h.registry, chrome, h.panes, usecase.DefaultWindowDefaults())
}

// wait runs the loop until pending resolves.
func (h *harness) wait(t *testing.T, pending *usecase.PendingPane) usecase.PaneResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.loop.RunUntil(ctx, pending.Done()))
	return pending.Result()
}

// open opens a window and waits for its first pane.
func (h *harness) open(t *testing.T) int {
	t.Helper()
	opened, err := h.windows.Open(h.ctx)
	require.NoError(t, err)
	h.wait(t, opened.Pending)
	return opened.Index
}

func (h *harness) addPane(t *testing.T, windowIndex int) usecase.PaneResult {
	t.Helper()
	return h.wait(t, h.panes.AddAndFocus(h.ctx, windowIndex))
}

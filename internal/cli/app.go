// Package cli assembles the headless chrome and exposes it to the commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/application/usecase"
	"github.com/bnema/paneshell/internal/cli/command"
	"github.com/bnema/paneshell/internal/cli/styles"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/infrastructure/config"
	"github.com/bnema/paneshell/internal/infrastructure/filtering"
	"github.com/bnema/paneshell/internal/infrastructure/headless"
	infralogging "github.com/bnema/paneshell/internal/infrastructure/logging"
	"github.com/bnema/paneshell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/paneshell/internal/infrastructure/snapshot"
	"github.com/bnema/paneshell/internal/logging"
	"github.com/bnema/paneshell/internal/ui/layout"
	"github.com/bnema/paneshell/internal/ui/mainloop"
)

// Options overrides the collaborators NewApp would otherwise build from the
// configuration. Zero values mean "derive from config".
type Options struct {
	Config   *config.Config
	Sessions repository.SessionStateRepository
	Filters  port.ContentFilterStore
	Server   *headless.Server
	// SessionID names the snapshot autosave writes to.
	SessionID entity.SessionID
}

// App holds the running chrome and the use cases driving it.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	SessionID entity.SessionID

	Loop     *mainloop.Loop
	Server   *headless.Server
	Registry *usecase.WindowRegistry
	Chrome   *layout.ChromeBuilder

	Windows  *usecase.ManageWindowsUseCase
	Panes    *usecase.ManagePanesUseCase
	Fields   *usecase.ChromeFieldsUseCase
	Events   *usecase.HandleFieldEventsUseCase
	Commands *command.Dispatcher

	Snapshot     *usecase.SnapshotSessionUseCase
	Restore      *usecase.RestoreSessionUseCase
	ListSessions *usecase.ListSessionsUseCase
	Sessions     repository.SessionStateRepository

	// FilterStore manages compiled filters on disk. It is nil when no store
	// directory is configured.
	FilterStore filtering.FilterStore

	ctx        context.Context
	db         *sqlite.LazyDB
	autosave   *snapshot.Service
	logCleanup func()
}

// NewApp loads the configuration from the XDG config directory, sets up
// logging and builds the app.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	sessionID := logging.GenerateSessionID()
	logger, cleanup, err := infralogging.NewSessionLogger(cfg.Logging)
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	ctx := logging.WithSessionID(logging.WithContext(context.Background(), logger), sessionID)

	app, err := New(ctx, Options{Config: cfg, SessionID: entity.SessionID(sessionID)})
	if err != nil {
		cleanup()
		return nil, err
	}
	app.logCleanup = cleanup

	if err := app.WatchConfig(mgr); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("config reload disabled")
	}
	return app, nil
}

// New builds the app from opts. ctx carries the logger.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	app := &App{
		Config:    cfg,
		Theme:     styles.NewTheme(),
		SessionID: opts.SessionID,
		Loop:      mainloop.New(),
		Server:    opts.Server,
		Sessions:  opts.Sessions,
		ctx:       ctx,
	}
	if app.SessionID == "" {
		app.SessionID = entity.SessionID(logging.GenerateSessionID())
	}
	if app.Server == nil {
		app.Server = headless.NewServer()
	}
	if app.Sessions == nil {
		if cfg.Database.Path == "" {
			return nil, sqlite.ErrEmptyPath
		}
		app.db = sqlite.NewLazyDB(cfg.Database.Path)
		app.Sessions = sqlite.NewLazySessionStateRepository(app.db)
	}

	app.FilterStore, _ = opts.Filters.(filtering.FilterStore)
	if app.FilterStore == nil && cfg.ContentFiltering.StoreDir != "" {
		app.FilterStore = filtering.NewStore(afero.NewOsFs(), cfg.ContentFiltering.StoreDir)
	}

	filters := opts.Filters
	if filters == nil {
		filters = lookupStore(cfg, app.FilterStore)
	}

	app.wire(filters)
	return app, nil
}

func lookupStore(cfg *config.Config, store filtering.FilterStore) port.ContentFilterStore {
	if !cfg.ContentFiltering.Enabled || store == nil {
		return filtering.DisabledStore{}
	}
	return store
}

func (a *App) wire(filters port.ContentFilterStore) {
	cfg := a.Config
	layoutEngine := headless.NewLayoutEngine()

	a.Registry = usecase.NewWindowRegistry(a.Server)
	a.Panes = usecase.NewManagePanesUseCase(
		a.Registry,
		headless.NewEngine(),
		layoutEngine,
		filters,
		a.Loop,
		cfg.ContentFiltering.Identifier,
	)
	a.Fields = usecase.NewChromeFieldsUseCase(a.Registry)
	a.Events = usecase.NewHandleFieldEventsUseCase(a.ctx, a.Registry, a.Panes, a.Fields, usecase.SearchConfig{
		DefaultSearch: cfg.Search.DefaultSearch,
		Shortcuts:     cfg.Search.Shortcuts,
	})
	a.Chrome = layout.NewChromeBuilder(headless.WidgetFactory{}, layoutEngine, cfg.Chrome.BarHeight, a.Events)
	a.Windows = usecase.NewManageWindowsUseCase(a.Registry, a.Chrome, a.Panes, windowDefaults(cfg))

	a.Snapshot = usecase.NewSnapshotSessionUseCase(a.Registry, a.Panes, a.Fields, a.Sessions)
	a.autosave = snapshot.NewService(a.Snapshot, a.SessionID, a.Loop, cfg.Session.SnapshotIntervalMs)
	a.autosave.Start(a.ctx)

	a.Commands = command.NewDispatcher(a.Windows, a.Panes, a.Fields, a.Events, a.markDirty)
	a.Events.SetCommandRunner(a.Commands)

	a.Restore = usecase.NewRestoreSessionUseCase(a.Sessions, a.Registry, a.Windows, a.Panes, a.Fields, a.Loop)
	a.ListSessions = usecase.NewListSessionsUseCase(a.Sessions)
}

func windowDefaults(cfg *config.Config) usecase.WindowDefaults {
	return usecase.WindowDefaults{
		Title:   cfg.Window.DefaultTitle,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Cascade: entity.Point{X: cfg.Window.CascadeX, Y: cfg.Window.CascadeY},
	}
}

// WatchConfig reloads the configuration when its file changes. Reloads are
// applied on the loop, so they take effect the next time it runs.
func (a *App) WatchConfig(mgr *config.Manager) error {
	mgr.OnConfigChange(func(cfg *config.Config) {
		a.Loop.Post(func() { a.ApplyConfig(cfg) })
	})
	return mgr.Watch()
}

// ApplyConfig switches to cfg for everything created from now on: window
// defaults, bar height, the content filter identifier, search settings and
// autosave. Open windows and panes are left as they are, and the filter store
// chosen at startup is kept. It must run on the loop.
func (a *App) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.Config = cfg
	a.Windows.SetDefaults(windowDefaults(cfg))
	a.Chrome.SetBarHeight(cfg.Chrome.BarHeight)
	a.Panes.SetFilterIdentifier(cfg.ContentFiltering.Identifier)
	a.autosave.SetInterval(cfg.Session.SnapshotIntervalMs)
	a.Events.SetSearchConfig(usecase.SearchConfig{
		DefaultSearch: cfg.Search.DefaultSearch,
		Shortcuts:     cfg.Search.Shortcuts,
	})
	logging.FromContext(a.ctx).Info().Msg("configuration reloaded")
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Exec runs one command line against the focused window (or window 0 when
// none has key status) and waits for the pane insertions it started.
func (a *App) Exec(ctx context.Context, line string) error {
	if err := a.Commands.RunCommand(ctx, a.Registry.FocusedIndex(), line); err != nil {
		return err
	}
	return a.WaitIdle(ctx)
}

// WaitIdle drives the loop until every pending pane insertion has completed.
// It must be called from the goroutine that owns the loop.
func (a *App) WaitIdle(ctx context.Context) error {
	for {
		pending := a.Commands.TakePending()
		if len(pending) == 0 {
			a.Loop.RunPending()
			return nil
		}
		for _, p := range pending {
			if err := a.Loop.RunUntil(ctx, p.Done()); err != nil {
				return err
			}
		}
	}
}

// Tree captures the current windows for display.
func (a *App) Tree() *entity.SessionState {
	return a.Snapshot.Capture(a.SessionID)
}

// RenderTree writes the window tree to w.
func (a *App) RenderTree(w io.Writer) {
	_, _ = fmt.Fprintln(w, styles.NewTreeRenderer(a.Theme).Render(a.Tree()))
}

// SaveSnapshot stores the current windows under the app's session ID.
func (a *App) SaveSnapshot(ctx context.Context) (*entity.SessionState, error) {
	return a.autosave.SaveNow(ctx)
}

// RestoreSession reopens the windows of sessionID and waits until every
// pane has been reinserted.
func (a *App) RestoreSession(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	out, err := a.Restore.Execute(ctx, usecase.RestoreInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	if err := a.Loop.RunUntil(ctx, out.Done); err != nil {
		return nil, err
	}
	return out.State, nil
}

// markDirty runs after every successful command.
func (a *App) markDirty() {
	if a.Config.Session.AutoSave {
		a.autosave.MarkDirty()
	}
}

// Close flushes a pending autosave and releases resources.
func (a *App) Close() error {
	if err := a.autosave.Stop(a.ctx); err != nil {
		logging.FromContext(a.ctx).Warn().Err(err).Msg("final snapshot failed")
	}

	a.Loop.Close()
	a.Server.Shutdown()

	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

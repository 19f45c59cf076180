package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/infrastructure/config"
	"github.com/bnema/paneshell/internal/infrastructure/filtering"
	"github.com/bnema/paneshell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/paneshell/internal/logging"
)

func testApp(t *testing.T, mutate func(*config.Config)) (context.Context, *App, repository.SessionStateRepository) {
	t.Helper()
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("disabled", "console"))

	db, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := sqlite.NewSessionStateRepository(db)

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	app, err := New(ctx, Options{
		Config:    cfg,
		Sessions:  repo,
		Filters:   filtering.DisabledStore{},
		SessionID: "test-session",
	})
	require.NoError(t, err)
	return ctx, app, repo
}

func TestApp_AutosaveAfterPaneInsertion(t *testing.T) {
	ctx, app, repo := testApp(t, func(cfg *config.Config) {
		cfg.Session.AutoSave = true
		cfg.Session.SnapshotIntervalMs = 0
	})
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.Exec(ctx, "window open"))

	state, err := repo.GetSnapshot(ctx, "test-session")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Len(t, state.Windows, 1)
	assert.Len(t, state.Windows[0].Panes, 1)
}

func TestApp_CloseFlushesThrottledSnapshot(t *testing.T) {
	ctx, app, repo := testApp(t, func(cfg *config.Config) {
		cfg.Session.AutoSave = true
		cfg.Session.SnapshotIntervalMs = 3_600_000
	})

	require.NoError(t, app.Exec(ctx, "window open"))
	require.NoError(t, app.Exec(ctx, "pane add"))

	state, err := repo.GetSnapshot(ctx, "test-session")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Len(t, state.Windows, 1)
	assert.Less(t, state.CountPanes(), 2, "later saves are held back by the interval")

	require.NoError(t, app.Close())

	state, err = repo.GetSnapshot(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, 2, state.CountPanes())
}

func TestApp_AutosaveDisabled(t *testing.T) {
	ctx, app, repo := testApp(t, func(cfg *config.Config) { cfg.Session.AutoSave = false })

	require.NoError(t, app.Exec(ctx, "window open"))
	require.NoError(t, app.Close())

	state, err := repo.GetSnapshot(ctx, "test-session")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestApp_SaveAndRestoreIntoFreshApp(t *testing.T) {
	ctx, app, repo := testApp(t, func(cfg *config.Config) { cfg.Session.AutoSave = false })
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.Exec(ctx, "window open"))
	require.NoError(t, app.Exec(ctx, "open https://example.com"))
	require.NoError(t, app.Exec(ctx, "window title docs"))
	_, err := app.SaveSnapshot(ctx)
	require.NoError(t, err)

	fresh, err := New(ctx, Options{
		Config:    app.Config,
		Sessions:  repo,
		Filters:   filtering.DisabledStore{},
		SessionID: "other",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = fresh.Close() })

	state, err := fresh.RestoreSession(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, "test-session", string(state.SessionID))

	require.Equal(t, 1, fresh.Windows.Count())
	assert.Equal(t, "docs", fresh.Windows.Title(0))
	assert.Equal(t, []bool{false, true}, fresh.Panes.Visibility(0))
	pane, ok := fresh.Panes.At(0, 1)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", pane.URI())

	var out bytes.Buffer
	fresh.RenderTree(&out)
	assert.Contains(t, out.String(), "[0] docs")
	assert.Contains(t, out.String(), "https://example.com")
}

func TestNew_RequiresDatabasePathWithoutRepository(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.Path = ""
	_, err := New(context.Background(), Options{Config: cfg})
	assert.ErrorIs(t, err, sqlite.ErrEmptyPath)
}

func TestApp_ApplyConfigAffectsNewWindowsOnly(t *testing.T) {
	ctx, app, _ := testApp(t, func(cfg *config.Config) { cfg.Session.AutoSave = false })
	t.Cleanup(func() { _ = app.Close() })

	require.NoError(t, app.Exec(ctx, "window open"))

	next := config.DefaultConfig()
	next.Session.AutoSave = false
	next.Window.DefaultTitle = "reloaded"
	next.Window.Width = 320
	next.Window.Height = 240
	next.Chrome.BarHeight = 40
	next.ContentFiltering.Identifier = "strict"
	app.ApplyConfig(next)

	require.NoError(t, app.Exec(ctx, "window open"))

	assert.Equal(t, "paneshell", app.Windows.Title(0), "open windows keep their title")
	assert.Equal(t, "reloaded", app.Windows.Title(1))
	window, ok := app.Registry.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, 320.0, window.Frame().Size.Width)
	assert.Equal(t, 240.0, window.Frame().Size.Height)
	assert.Equal(t, 40.0, app.Chrome.BarHeight())
	assert.Equal(t, "strict", app.Panes.FilterIdentifier())
}

func TestApp_WatchConfigAppliesFileChanges(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))

	dir := filepath.Join(root, "config", "paneshell")
	mgr, err := config.NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("disabled", "console"))
	db, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := New(ctx, Options{
		Config:    mgr.Get(),
		Sessions:  sqlite.NewSessionStateRepository(db),
		Filters:   filtering.DisabledStore{},
		SessionID: "watch-session",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.NoError(t, app.WatchConfig(mgr))

	toml := "[window]\ndefault_title = \"from disk\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))

	assert.Eventually(t, func() bool {
		app.Loop.RunPending()
		return app.Windows.Defaults().Title == "from disk"
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, app.Exec(ctx, "window open"))
	assert.Equal(t, "from disk", app.Windows.Title(0))
}

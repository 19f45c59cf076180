package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/paneshell/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func sampleState(id entity.SessionID, savedAt time.Time) *entity.SessionState {
	return &entity.SessionState{
		Version:   entity.SessionStateVersion,
		SessionID: id,
		SavedAt:   savedAt,
		Windows: []entity.WindowSnapshot{
			{
				Title:       "docs",
				Frame:       entity.NewRect(20, 40, 700, 700),
				Visible:     true,
				Key:         true,
				AddressText: "https://go.dev",
				FocusedPane: 1,
				Panes: []entity.PaneSnapshot{
					{URI: "https://example.com"},
					{URI: "https://go.dev", Visible: true},
				},
			},
		},
	}
}

func TestSessionStateRepository_RoundTrip(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "nested", "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	repo := sqlite.NewSessionStateRepository(db)
	savedAt := time.Date(2025, 12, 22, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveSnapshot(ctx, sampleState("s1", savedAt)))

	got, err := repo.GetSnapshot(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.SessionID("s1"), got.SessionID)
	assert.True(t, got.SavedAt.Equal(savedAt))
	require.Len(t, got.Windows, 1)
	assert.Equal(t, "docs", got.Windows[0].Title)
	assert.Equal(t, 700.0, got.Windows[0].Frame.Size.Width)
	assert.Equal(t, 2, got.CountPanes())
	assert.True(t, got.Windows[0].Panes[1].Visible)
}

func TestSessionStateRepository_SaveReplacesExisting(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewSessionStateRepository(db)
	first := sampleState("s1", time.Unix(100, 0).UTC())
	require.NoError(t, repo.SaveSnapshot(ctx, first))

	second := sampleState("s1", time.Unix(200, 0).UTC())
	second.Windows[0].Title = "renamed"
	require.NoError(t, repo.SaveSnapshot(ctx, second))

	all, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "renamed", all[0].Windows[0].Title)
}

func TestSessionStateRepository_MissingAndDelete(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewSessionStateRepository(db)

	got, err := repo.GetSnapshot(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.DeleteSnapshot(ctx, "missing"))

	require.NoError(t, repo.SaveSnapshot(ctx, sampleState("s1", time.Now())))
	require.NoError(t, repo.DeleteSnapshot(ctx, "s1"))
	got, err = repo.GetSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, repo.SaveSnapshot(ctx, nil))
}

func TestSessionStateRepository_AllOrderedByMostRecent(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewSessionStateRepository(db)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveSnapshot(ctx, sampleState("old", base)))
	require.NoError(t, repo.SaveSnapshot(ctx, sampleState("new", base.Add(time.Hour))))
	require.NoError(t, repo.SaveSnapshot(ctx, sampleState("mid", base.Add(time.Minute))))

	_, err = db.ExecContext(ctx,
		`INSERT INTO session_states (session_id, state_json, version, updated_at) VALUES ('bad', '{', 1, ?)`,
		base.Add(2*time.Hour).UnixNano())
	require.NoError(t, err)

	all, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	ids := make([]entity.SessionID, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.SessionID)
	}
	assert.Equal(t, []entity.SessionID{"new", "mid", "old"}, ids)
}

func TestMigrations_AreIdempotent(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.RunMigrations(ctx, db))
	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.ErrorIs(t, err, sqlite.ErrEmptyPath)
}

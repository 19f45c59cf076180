package sqlite_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/paneshell/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyDB_OpensOnFirstAccess(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "sessions.db"))
	assert.False(t, lazy.IsInitialized())

	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.True(t, lazy.IsInitialized())

	var one int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)

	require.NoError(t, lazy.Close())
	assert.False(t, lazy.IsInitialized())
}

func TestLazyDB_ConcurrentCallersShareConnection(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "sessions.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 8
	results := make([]any, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := lazy.DB(ctx)
			assert.NoError(t, err)
			results[i] = db
		}()
	}
	wg.Wait()

	for _, db := range results[1:] {
		assert.Same(t, results[0], db)
	}
}

func TestLazyDB_CloseBeforeInit(t *testing.T) {
	lazy := sqlite.NewLazyDB("/some/path/sessions.db")
	assert.NoError(t, lazy.Close())
	assert.Equal(t, "/some/path/sessions.db", lazy.Path())
}

func TestLazyDB_EmptyPathFails(t *testing.T) {
	lazy := sqlite.NewLazyDB("")
	_, err := lazy.DB(testCtx())
	assert.ErrorIs(t, err, sqlite.ErrEmptyPath)
}

func TestLazySessionStateRepository_DefersOpen(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "sessions.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazySessionStateRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.SaveSnapshot(ctx, sampleState("s1", time.Now())))
	assert.True(t, lazy.IsInitialized())

	got, err := repo.GetSnapshot(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	all, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteSnapshot(ctx, "s1"))
}

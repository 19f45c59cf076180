package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/domain/repository"
	"github.com/bnema/paneshell/internal/logging"
)

var errDatabaseClosed = errors.New("database closed")

// LazyDB opens the database on first use. Commands that never touch saved
// sessions skip the WASM compilation and migration cost entirely.
type LazyDB struct {
	dbPath string

	once sync.Once
	mu   sync.RWMutex
	db   *sql.DB
	err  error
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a provider for dbPath without opening it.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the connection, opening it on the first call.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("opening database on first use")

		db, err := NewConnection(ctx, l.dbPath)

		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()

		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the connection if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db, l.err = nil, errDatabaseClosed
	return err
}

// IsInitialized reports whether the connection has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

type lazySessionStateRepo struct {
	provider port.DatabaseProvider

	mu   sync.Mutex
	repo repository.SessionStateRepository
}

// NewLazySessionStateRepository defers opening the database until the first
// repository call.
func NewLazySessionStateRepository(provider port.DatabaseProvider) repository.SessionStateRepository {
	return &lazySessionStateRepo{provider: provider}
}

func (r *lazySessionStateRepo) get(ctx context.Context) (repository.SessionStateRepository, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.repo != nil {
		return r.repo, nil
	}
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	r.repo = NewSessionStateRepository(db)
	return r.repo, nil
}

func (r *lazySessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.SaveSnapshot(ctx, state)
}

func (r *lazySessionStateRepo) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetSnapshot(ctx, sessionID)
}

func (r *lazySessionStateRepo) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.DeleteSnapshot(ctx, sessionID)
}

func (r *lazySessionStateRepo) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetAllSnapshots(ctx)
}

package filtering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/infrastructure/cache"
	"github.com/bnema/paneshell/internal/logging"
)

const (
	compiledExt       = ".json"
	storeDirPerm      = 0o755
	compiledFilePerm  = 0o644
	compiledCacheSize = 16
)

var (
	// ErrFilterNotFound is returned when no compiled filter has the identifier.
	ErrFilterNotFound = errors.New("content filter not found")
	// ErrInvalidIdentifier is returned for empty identifiers or ones containing a path separator.
	ErrInvalidIdentifier = errors.New("invalid content filter identifier")
)

// Store keeps compiled filters as JSON documents in a directory.
// Concurrent lookups of the same identifier share a single read, and
// recently loaded filters are served from memory.
type Store struct {
	fs       afero.Fs
	path     string
	mu       sync.Mutex
	group    singleflight.Group
	compiled port.Cache[string, *CompiledFilter]
	now      func() time.Time
}

// NewStore creates a new Store rooted at storagePath on fsys.
func NewStore(fsys afero.Fs, storagePath string) *Store {
	return &Store{
		fs:       fsys,
		path:     storagePath,
		compiled: cache.NewLRU[string, *CompiledFilter](compiledCacheSize),
		now:      time.Now,
	}
}

// Path returns the storage path for compiled filters.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) compiledPath(identifier string) (string, error) {
	if identifier == "" || strings.ContainsAny(identifier, `/\`) || identifier == "." || identifier == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	return filepath.Join(s.path, identifier+compiledExt), nil
}

// Compile validates a JSON rule list read from jsonPath and stores it with the
// given identifier, replacing any previous filter of that name.
func (s *Store) Compile(ctx context.Context, identifier, jsonPath string) (*CompiledFilter, error) {
	log := logging.FromContext(ctx).With().
		Str("component", "filter-store").
		Str("identifier", identifier).
		Str("json_path", jsonPath).
		Logger()

	target, err := s.compiledPath(identifier)
	if err != nil {
		return nil, err
	}

	raw, err := afero.ReadFile(s.fs, jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read rule list: %w", err)
	}

	var rules []Rule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse rule list: %w", err)
	}
	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}

	filter := &CompiledFilter{ID: identifier, Rules: rules, CompiledAt: s.now().UTC()}
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode compiled filter: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.path, storeDirPerm); err != nil {
		return nil, fmt.Errorf("create filter store: %w", err)
	}
	if err := afero.WriteFile(s.fs, target, data, compiledFilePerm); err != nil {
		return nil, fmt.Errorf("write compiled filter: %w", err)
	}
	s.compiled.Set(identifier, filter)

	log.Info().Int("rules", filter.RuleCount()).Msg("filter compilation completed")
	return filter, nil
}

// Load loads a previously compiled filter by its identifier.
func (s *Store) Load(ctx context.Context, identifier string) (*CompiledFilter, error) {
	log := logging.FromContext(ctx).With().
		Str("component", "filter-store").
		Str("identifier", identifier).
		Logger()

	target, err := s.compiledPath(identifier)
	if err != nil {
		return nil, err
	}

	if filter, ok := s.compiled.Get(identifier); ok {
		return filter, nil
	}

	s.mu.Lock()
	raw, err := afero.ReadFile(s.fs, target)
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("filter load failed (not compiled)")
		return nil, fmt.Errorf("%w: %s", ErrFilterNotFound, identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("read compiled filter: %w", err)
	}

	var filter CompiledFilter
	if err := json.Unmarshal(raw, &filter); err != nil {
		return nil, fmt.Errorf("decode compiled filter %s: %w", identifier, err)
	}

	s.compiled.Set(identifier, &filter)
	log.Debug().Int("rules", filter.RuleCount()).Msg("filter loaded successfully")
	return &filter, nil
}

// Lookup loads identifier on a separate goroutine. The returned channel
// receives exactly one result and is then closed.
func (s *Store) Lookup(ctx context.Context, identifier string) <-chan port.FilterResult {
	out := make(chan port.FilterResult, 1)
	go func() {
		defer close(out)
		v, err, _ := s.group.Do(identifier, func() (any, error) {
			return s.Load(ctx, identifier)
		})
		if err != nil {
			out <- port.FilterResult{Err: err}
			return
		}
		out <- port.FilterResult{Filter: v.(*CompiledFilter)}
	}()
	return out
}

// FetchIdentifiers returns all stored filter identifiers.
func (s *Store) FetchIdentifiers(ctx context.Context) ([]string, error) {
	log := logging.FromContext(ctx).With().
		Str("component", "filter-store").
		Logger()

	s.mu.Lock()
	entries, err := afero.ReadDir(s.fs, s.path)
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list filter store: %w", err)
	}

	identifiers := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != compiledExt {
			continue
		}
		identifiers = append(identifiers, strings.TrimSuffix(name, compiledExt))
	}
	sort.Strings(identifiers)

	log.Debug().Int("count", len(identifiers)).Msg("fetched filter identifiers")
	return identifiers, nil
}

// Remove removes a compiled filter by its identifier.
func (s *Store) Remove(ctx context.Context, identifier string) error {
	target, err := s.compiledPath(identifier)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.compiled.Remove(identifier)
	if err := s.fs.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFilterNotFound, identifier)
		}
		return fmt.Errorf("remove compiled filter: %w", err)
	}
	logging.FromContext(ctx).Info().Str("identifier", identifier).Msg("filter removed")
	return nil
}

// HasCompiledFilter checks if a compiled filter exists for the given identifier.
func (s *Store) HasCompiledFilter(ctx context.Context, identifier string) bool {
	identifiers, err := s.FetchIdentifiers(ctx)
	if err != nil {
		return false
	}
	for _, id := range identifiers {
		if id == identifier {
			return true
		}
	}
	return false
}

// DisabledStore answers every lookup with port.ErrFilteringDisabled.
type DisabledStore struct{}

func (DisabledStore) Lookup(_ context.Context, _ string) <-chan port.FilterResult {
	out := make(chan port.FilterResult, 1)
	out <- port.FilterResult{Err: port.ErrFilteringDisabled}
	close(out)
	return out
}

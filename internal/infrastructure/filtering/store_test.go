package filtering

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/paneshell/internal/application/port"
)

const sampleRules = `[
	{"trigger": {"url-filter": "ads\\.example\\.com"}, "action": {"type": "block"}},
	{"trigger": {"url-filter": ".*", "if-domain": ["news.example"]}, "action": {"type": "css-display-none", "selector": ".banner"}}
]`

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys, "/data/filters")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, fsys
}

func TestStore_CompileThenLoad(t *testing.T) {
	s, fsys := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, "/src/rules.json", []byte(sampleRules), 0o644))

	compiled, err := s.Compile(context.Background(), DefaultIdentifier, "/src/rules.json")
	require.NoError(t, err)
	assert.Equal(t, 2, compiled.RuleCount())

	loaded, err := s.Load(context.Background(), DefaultIdentifier)
	require.NoError(t, err)
	assert.Equal(t, DefaultIdentifier, loaded.Identifier())
	assert.Equal(t, 2, loaded.RuleCount())
	assert.Equal(t, ".banner", loaded.Rules[1].Action.Selector)
	assert.True(t, loaded.CompiledAt.Equal(s.now()))

	ok, err := afero.Exists(fsys, "/data/filters/filter.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_CompileRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{name: "empty url filter", rules: `[{"trigger":{"url-filter":""},"action":{"type":"block"}}]`},
		{name: "bad regexp", rules: `[{"trigger":{"url-filter":"("},"action":{"type":"block"}}]`},
		{name: "unknown action", rules: `[{"trigger":{"url-filter":"x"},"action":{"type":"explode"}}]`},
		{name: "missing selector", rules: `[{"trigger":{"url-filter":"x"},"action":{"type":"css-display-none"}}]`},
		{name: "both domain scopes", rules: `[{"trigger":{"url-filter":"x","if-domain":["a"],"unless-domain":["b"]},"action":{"type":"block"}}]`},
		{name: "not json", rules: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fsys := newTestStore(t)
			require.NoError(t, afero.WriteFile(fsys, "/src/rules.json", []byte(tt.rules), 0o644))

			_, err := s.Compile(context.Background(), "bad", "/src/rules.json")
			assert.Error(t, err)
			assert.False(t, s.HasCompiledFilter(context.Background(), "bad"))
		})
	}
}

func TestStore_LoadMissingFilter(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFilterNotFound)
}

func TestStore_RejectsPathLikeIdentifiers(t *testing.T) {
	s, _ := newTestStore(t)

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		_, err := s.Load(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, id)
	}
}

func TestStore_LookupDeliversExactlyOneResult(t *testing.T) {
	s, fsys := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, "/src/rules.json", []byte(sampleRules), 0o644))
	_, err := s.Compile(context.Background(), DefaultIdentifier, "/src/rules.json")
	require.NoError(t, err)

	ch := s.Lookup(context.Background(), DefaultIdentifier)
	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Filter.RuleCount())

	_, ok = <-ch
	assert.False(t, ok, "channel closes after the single result")
}

func TestStore_LookupMissingLeavesFilterNil(t *testing.T) {
	s, _ := newTestStore(t)

	res := <-s.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, res.Err, ErrFilterNotFound)
	assert.Nil(t, res.Filter)
}

func TestStore_FetchIdentifiersAndRemove(t *testing.T) {
	s, fsys := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, "/src/rules.json", []byte(sampleRules), 0o644))

	ids, err := s.FetchIdentifiers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"zeta", "alpha"} {
		_, err := s.Compile(context.Background(), id, "/src/rules.json")
		require.NoError(t, err)
	}
	require.NoError(t, afero.WriteFile(fsys, "/data/filters/notes.txt", []byte("x"), 0o644))

	ids, err = s.FetchIdentifiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)

	require.NoError(t, s.Remove(context.Background(), "alpha"))
	assert.False(t, s.HasCompiledFilter(context.Background(), "alpha"))
	assert.ErrorIs(t, s.Remove(context.Background(), "alpha"), ErrFilterNotFound)
}

func TestDisabledStore(t *testing.T) {
	res := <-DisabledStore{}.Lookup(context.Background(), DefaultIdentifier)
	assert.ErrorIs(t, res.Err, port.ErrFilteringDisabled)
	assert.Nil(t, res.Filter)
}

func TestStore_LoadServesRecentFiltersFromMemory(t *testing.T) {
	s, fsys := newTestStore(t)
	require.NoError(t, afero.WriteFile(fsys, "/src/rules.json", []byte(sampleRules), 0o644))
	_, err := s.Compile(context.Background(), DefaultIdentifier, "/src/rules.json")
	require.NoError(t, err)

	// A second store over the same files reads from disk once, then caches.
	other := NewStore(fsys, "/data/filters")
	first, err := other.Load(context.Background(), DefaultIdentifier)
	require.NoError(t, err)

	require.NoError(t, fsys.Remove("/data/filters/filter.json"))
	second, err := other.Load(context.Background(), DefaultIdentifier)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Removing through the store drops the cached copy too.
	require.NoError(t, afero.WriteFile(fsys, "/data/filters/filter.json", []byte(`{"identifier":"filter"}`), 0o644))
	require.NoError(t, other.Remove(context.Background(), DefaultIdentifier))
	_, err = other.Load(context.Background(), DefaultIdentifier)
	assert.ErrorIs(t, err, ErrFilterNotFound)
}

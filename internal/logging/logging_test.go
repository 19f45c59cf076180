package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, "console", NormalizeFormat("text"))
	assert.Equal(t, "json", NormalizeFormat("JSON"))
}

func TestContextFieldsAreCarried(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "panes")
	ctx = WithWindowIndex(ctx, 2)
	ctx = WithPaneIndex(ctx, 1)

	FromContext(ctx).Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"panes"`)
	assert.Contains(t, out, `"window_index":2`)
	assert.Contains(t, out, `"pane_index":1`)
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	log.Info().Msg("dropped")
}

func TestGenerateSessionID_Format(t *testing.T) {
	id := generateSessionIDAt(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^20260304_050607_[0-9a-f]{4}$`), id)
	assert.Len(t, ShortSessionID(id), 4)
	assert.Equal(t, "ab", ShortSessionID("ab"))
}

func TestLogRotator_RotatesWhenFull(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, 0, 7)
	require.NoError(t, err)
	r.maxSize = 16
	t.Cleanup(func() { _ = r.Close() })

	_, err = r.Write([]byte("0123456789"))
	require.NoError(t, err)
	_, err = r.Write([]byte("0123456789"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))
}

func TestLogRotator_PrunesStaleBackups(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, logFileName+".2000-01-01-00-00-00.000")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	r, err := NewLogRotator(dir, 0, 7)
	require.NoError(t, err)
	r.maxSize = 4
	t.Cleanup(func() { _ = r.Close() })

	_, err = r.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = r.Write([]byte("abc"))
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

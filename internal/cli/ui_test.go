package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/cinelog/internal/adapter"
	"github.com/mmcdole/cinelog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	return &session{
		cfg:       adapter.DefaultConfig(),
		configDir: filepath.Join(t.TempDir(), "config"),
		logger:    adapter.NullLogger(),
		closer:    io.NopCloser(nil),
	}
}

func TestSetupFlow_CreatesDatabase(t *testing.T) {
	s := newTestSession(t)
	dbPath := filepath.Join(t.TempDir(), "catalog", "movies.db")

	// Decline once, then accept
	input := dbPath + "\nn\n" + dbPath + "\n\n"
	var out bytes.Buffer
	require.NoError(t, runSetupFlow(context.Background(), strings.NewReader(input), &out, s))

	assert.Contains(t, out.String(), "Welcome to cinelog!")
	assert.Equal(t, 2, strings.Count(out.String(), "Create it? [Y/n]"))
	assert.Contains(t, out.String(), "✓ Saved database path")
	assert.True(t, store.FileExists(dbPath))

	cfg, err := adapter.LoadConfigFrom(s.configDir)
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.Database.Path)
}

func TestSetupFlow_RetriesUnreadableFile(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()

	junk := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(junk, []byte(strings.Repeat("not a database ", 100)), 0o644))

	good := filepath.Join(dir, "movies.db")
	_, err := store.Initialize(context.Background(), good, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	input := junk + "\n" + good + "\n"
	require.NoError(t, runSetupFlow(context.Background(), strings.NewReader(input), &out, s))

	assert.Contains(t, out.String(), "✗ Could not open "+junk)
	assert.Equal(t, good, s.cfg.Database.Path)

	// The rejected file is left alone
	data, err := os.ReadFile(junk)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "not a database"))
}

func TestSetupFlow_EndOfInput(t *testing.T) {
	s := newTestSession(t)

	err := runSetupFlow(context.Background(), strings.NewReader(""), io.Discard, s)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.False(t, s.cfg.IsConfigured())
}

func TestIsInteractive(t *testing.T) {
	assert.False(t, isInteractive(strings.NewReader("")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isInteractive(f), "regular files are not terminals")
}

func TestSortField(t *testing.T) {
	s := newTestSession(t)

	f, err := s.sortField("rating")
	require.NoError(t, err)
	assert.Equal(t, "rating", string(f))

	s.cfg.UI.Sort = "nonsense"
	f, err = s.sortField("")
	require.NoError(t, err)
	assert.Equal(t, "title", string(f), "invalid ui.sort falls back to title")

	_, err = s.sortField("nonsense")
	assert.Error(t, err)
}

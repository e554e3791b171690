package adapter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, UIModeAuto, cfg.UI.Mode)
	assert.Equal(t, "title", cfg.UI.Sort)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.True(t, strings.HasSuffix(cfg.Logging.File, "cinelog.log"))
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/movies.db"
	cfg.UI.Mode = UIModeMenu
	cfg.UI.Sort = "rating"
	cfg.Logging.Level = "DEBUG"

	require.NoError(t, SaveConfigTo(dir, cfg))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.IsConfigured())
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = "/from/file.db"
	require.NoError(t, SaveConfigTo(dir, cfg))

	t.Setenv("CINELOG_DATABASE_PATH", "/from/env.db")
	t.Setenv("CINELOG_UI_MODE", "tui")

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", loaded.Database.Path)
	assert.Equal(t, UIModeTUI, loaded.UI.Mode)
}

func TestLoadConfigFrom_InvalidMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  mode: gui\n"), 0644))

	_, err := LoadConfigFrom(dir)
	assert.ErrorContains(t, err, "invalid ui.mode")
}

func TestLoadConfigFrom_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database: [unclosed\n"), 0644))

	_, err := LoadConfigFrom(dir)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cinelog.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "title", "Heat")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "Heat", entry["title"])
}

func TestSetupLogger_Stderr(t *testing.T) {
	logger, closer, err := SetupLogger(&LoggingConfig{File: "-"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

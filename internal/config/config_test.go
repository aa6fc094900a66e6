package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
storage:
  database_path: "/tmp/test.db"
logging:
  level: debug
history:
  capacity: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.History.Capacity)
	// Unspecified sections keep their defaults.
	assert.Equal(t, Default().Share.BaseURL, cfg.Share.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrEnvFallsBackToEnv(t *testing.T) {
	t.Setenv("SPLITSNAP_ADDR", ":7070")
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("HISTORY_CAPACITY", "25")

	cfg := LoadOrEnv(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "/tmp/env.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 25, cfg.History.Capacity)
}

func TestDefaultsAreUsable(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Server.Addr)
	assert.NotEmpty(t, cfg.Storage.DatabasePath)
	assert.Positive(t, cfg.History.Capacity)
}

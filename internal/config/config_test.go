package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/safeid/internal/logger"
	"github.com/TheusHen/safeid/safeid/keystore"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Listen, cfg.Listen)
	assert.Equal(t, keystore.DefaultParams(), cfg.Keystore)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Home, cfg.Home)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
home: /tmp/safeid-home
listen: "[::1]:9000"
log:
  level: debug
  format: json
keystore:
  argon2:
    time: 3
    memoryKiB: 1024
    threads: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/safeid-home", cfg.Home)
	assert.Equal(t, "[::1]:9000", cfg.Listen)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, logger.FormatJSON, cfg.Log.Format)
	assert.Equal(t, keystore.Params{Time: 3, MemoryKiB: 1024, Threads: 2}, cfg.Keystore)
	assert.Equal(t, filepath.Join("/tmp/safeid-home", RecordFile), cfg.RecordPath())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "keystore:\n  argon2:\n    time: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), cfg.Keystore.Time)
	assert.Equal(t, keystore.DefaultParams().MemoryKiB, cfg.Keystore.MemoryKiB)
	assert.Equal(t, Default().Listen, cfg.Listen)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SAFEID_HOME", "/env/home")
	t.Setenv("SAFEID_LISTEN", "0.0.0.0:1")
	t.Setenv("SAFEID_LOG_LEVEL", "warn")
	t.Setenv("SAFEID_ARGON2_MEMORY_KIB", "2048")

	cfg, err := Load(writeFile(t, "home: /file/home\n"))
	require.NoError(t, err)
	assert.Equal(t, "/env/home", cfg.Home)
	assert.Equal(t, "0.0.0.0:1", cfg.Listen)
	assert.Equal(t, slog.LevelWarn, cfg.Log.Level)
	assert.Equal(t, uint32(2048), cfg.Keystore.MemoryKiB)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "log: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "log:\n  level: loud\n"))
	assert.Error(t, err)

	t.Setenv("SAFEID_ARGON2_MEMORY_KIB", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvStorageDriver, "")
	t.Setenv(EnvStorageDSN, "")
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, "file", cfg.StorageDriver())
	assert.Equal(t, filepath.Join(dir, BoardFile), cfg.StorageDSN())
	assert.Equal(t, DefaultAddr, cfg.ServerAddr())
	assert.Equal(t, filepath.Join(dir, "oauth_client.json"), cfg.OAuthClientPath())
	assert.Equal(t, filepath.Join(dir, "token.json"), cfg.TokenPath())
}

func TestNew_ReadsSettings(t *testing.T) {
	t.Setenv(EnvStorageDriver, "")
	t.Setenv(EnvStorageDSN, "")
	dir := t.TempDir()
	settings := `storage:
  driver: sqlite
  key: board:home
server:
  addr: 0.0.0.0:9000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte(settings), 0600))

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StorageDriver())
	assert.Equal(t, filepath.Join(dir, "board.db"), cfg.StorageDSN())
	assert.Equal(t, "board:home", cfg.Storage.Key)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddr())
}

func TestNew_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("storage:\n  driver: sqlite\n"), 0600))
	t.Setenv(EnvStorageDriver, "mysql")
	t.Setenv(EnvStorageDSN, "user:pw@tcp(127.0.0.1:3306)/board")

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.StorageDriver())
	assert.Equal(t, "user:pw@tcp(127.0.0.1:3306)/board", cfg.StorageDSN())
}

func TestNew_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("storage: [unclosed"), 0600))

	_, err := New(dir)
	assert.Error(t, err)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestTokenLifecycle(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "cfg")}
	require.NoError(t, cfg.EnsureDir())

	assert.False(t, cfg.HasToken())
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())
	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}

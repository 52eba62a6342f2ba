package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "https://backend.example.com"
	cfg.Backend.Timeout = 5 * time.Second
	cfg.IndexNow.Key = "abc123"
	require.NoError(t, cfg.Save(path))
	assert.True(t, Exists(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base_url: https://api.example.com\n  timeout: 3s\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api/v1/metrics", cfg.Backend.MetricsPath)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEGO_SITE_PORT", "9000")
	t.Setenv("GEGO_SITE_BACKEND_URL", "https://metrics.example.com")
	t.Setenv("GEGO_SITE_BACKEND_TIMEOUT", "2s")
	t.Setenv("GEGO_SITE_INDEXNOW_ENABLED", "true")
	t.Setenv("INDEXNOW_KEY", "key-from-env")
	t.Setenv("GEGO_SITE_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://metrics.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.IndexNow.Enabled)
	assert.Equal(t, "key-from-env", cfg.IndexNow.Key)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0:9000", cfg.Address())
}

func TestLoadWithEnv_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEGO_SITE_BACKEND_URL", "http://127.0.0.1:1234")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:1234", cfg.Backend.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Backend.BaseURL = "ftp://example.com"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.IndexNow.Enabled = true
	assert.Error(t, cfg.Validate())
}

func TestGetConfigPath_Env(t *testing.T) {
	t.Setenv("GEGO_SITE_CONFIG_PATH", "/tmp/site.yaml")
	assert.Equal(t, "/tmp/site.yaml", GetConfigPath())
}

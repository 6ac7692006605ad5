package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PARISH_STATE_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, filepath.Join(cfg.StateDir, "console.log"), cfg.LogFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PARISH_STATE_DIR", dir)
	t.Setenv("PARISH_API_BASE_URL", "https://registry.example.org")
	t.Setenv("PARISH_PAGE_SIZE", "25")
	t.Setenv("PARISH_HTTP_TIMEOUT", "5s")
	t.Setenv("PARISH_LOG_LEVEL", "debug")
	t.Setenv("PARISH_THEME", "neon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://registry.example.org", cfg.APIBaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "neon", cfg.Theme)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("PARISH_STATE_DIR", t.TempDir())
	t.Setenv("PARISH_PAGE_SIZE", "lots")
	t.Setenv("PARISH_HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoad_RejectsInvalidBaseURL(t *testing.T) {
	t.Setenv("PARISH_STATE_DIR", t.TempDir())
	t.Setenv("PARISH_API_BASE_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsPageSizeOutOfRange(t *testing.T) {
	t.Setenv("PARISH_STATE_DIR", t.TempDir())
	t.Setenv("PARISH_PAGE_SIZE", "500")

	_, err := Load()
	assert.Error(t, err)
}

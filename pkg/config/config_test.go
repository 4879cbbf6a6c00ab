package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "Asia/Kolkata", cfg.Event.Timezone)
	assert.Equal(t, 9, cfg.Event.Start.Hour())
	assert.Equal(t, []string{"image/png", "image/jpeg", "image/webp", "image/svg+xml"}, cfg.Uploads.AllowedMIMEs)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "./data/exports", cfg.Exports.Dir)
	assert.False(t, within(cfg.Exports.Dir, cfg.Uploads.Dir))
}

func TestLoadRejectsExportsInsideUploads(t *testing.T) {
	chdirTemp(t)
	t.Setenv("UPLOADS_DIR", "./public")
	t.Setenv("EXPORTS_DIR", "./public/exports")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXPORTS_DIR")

	t.Setenv("EXPORTS_DIR", "./public")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("EXPORTS_DIR", "./public-exports")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./public-exports", cfg.Exports.Dir)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("PUBLIC_CACHE_TTL", "not-a-duration")
	t.Setenv("EVENT_TIMEZONE", "UTC")
	t.Setenv("EVENT_START", "2026-12-13T09:00:00Z")
	t.Setenv("EVENT_END", "2026-12-13T18:00:00Z")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.December, cfg.Event.Start.Month())
}

func TestLoadRejectsBadEventStart(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EVENT_START", "tomorrow")

	_, err := Load()
	require.Error(t, err)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

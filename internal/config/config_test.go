package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/QRVault/QR-Backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/qr_test")
	t.Setenv("CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("LOGIN_RATE_PER_MIN", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONFIG", "")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/qr_test")
	t.Setenv("CONFIG", "")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("ALLOWED_ORIGINS", "https://qr.example.com, https://staging.qr.example.com")
	t.Setenv("LOGIN_RATE_PER_MIN", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://qr.example.com", "https://staging.qr.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.LoginRatePerMin)
}

func TestLoad_YAMLFileWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "port: \"7070\"\ndatabase_url: postgres://filehost/qr\nlogin_rate_per_min: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("DATABASE_URL", "postgres://envhost/qr")
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "postgres://filehost/qr", cfg.DatabaseURL)
	assert.Equal(t, 3, cfg.LoginRatePerMin)
}

func TestLoad_BadTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/qr_test")
	t.Setenv("CONFIG", "")
	t.Setenv("SESSION_TTL", "not-a-duration")

	_, err := config.Load()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, 0, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "500")
	t.Setenv("PAGINATION_MAX_LIMIT", "50")
	t.Setenv("JWT_ACCESS_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 50, cfg.Pagination.DefaultLimit, "default limit is clamped to the max")
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Contains(t, cfg.DB.DSN(), "host=db.internal")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(file, []byte("JWT_SECRET: from-file\nPORT: \"7000\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

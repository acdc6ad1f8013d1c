package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("ONTRAIL_HOST", "http://env:1")
	t.Setenv("ONTRAIL_STORE", "redis")
	t.Setenv("ONTRAIL_REDIS_ADDR", "cache:6379")
	t.Setenv("ONTRAIL_DEBUG", "true")
	t.Setenv("ONTRAIL_REQUEST_TIMEOUT", "7s")

	cfg := defaults()
	parseEnv(cfg, "")

	assert.Equal(t, "http://env:1", cfg.Host)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	// untouched
	assert.Equal(t, "ontrail.db", cfg.StorePath)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ONTRAIL_STORE_PATH=from-dotenv.db\nONTRAIL_LOG_LEVEL=debug\n"), 0o600))

	// real environment wins over the file
	t.Setenv("ONTRAIL_LOG_LEVEL", "error")
	t.Cleanup(func() { _ = os.Unsetenv("ONTRAIL_STORE_PATH") })

	cfg := defaults()
	parseEnv(cfg, path)

	assert.Equal(t, "from-dotenv.db", cfg.StorePath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_MissingFileIsFine(t *testing.T) {
	cfg := defaults()
	require.NotPanics(t, func() { parseEnv(cfg, filepath.Join(t.TempDir(), "nope.env")) })
	assert.Equal(t, defaults(), cfg)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	t.Setenv("ONTRAIL_REQUEST_TIMEOUT", "soon")

	cfg := defaults()
	require.Panics(t, func() { parseEnv(cfg, "") })
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		Host:           "http://localhost:3000",
		StoreDriver:    StoreSQLite,
		StorePath:      "ontrail.db",
		RedisAddr:      "localhost:6379",
		RedisPrefix:    "ontrail:",
		LogLevel:       "info",
		LogFormat:      "text",
		RequestTimeout: 30 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestValidate(t *testing.T) {
	require.NoError(t, defaults().Validate())

	c := defaults()
	c.StoreDriver = "etcd"
	assert.ErrorContains(t, c.Validate(), "etcd")

	c = defaults()
	c.Host = ""
	assert.Error(t, c.Validate())

	c = defaults()
	c.RequestTimeout = -time.Second
	assert.Error(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:3000", cfg.Host)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"host":         "http://json:1",
		"store_driver": "memory",
		"log_level":    "warn",
	})
	t.Setenv("ONTRAIL_HOST", "http://env:2")
	t.Setenv("ONTRAIL_LOG_FORMAT", "json")
	os.Args = []string{"testbin", "-c", path, "-h", "http://flag:3"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:3", cfg.Host)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_PanicsOnBadDriver(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-s", "etcd"}

	require.Panics(t, func() { LoadConfig() })
}

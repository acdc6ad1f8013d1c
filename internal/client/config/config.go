package config

import (
	"fmt"
	"time"
)

// Store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the OnTrail CLI.
//
// RequestTimeout bounds each CLI command; the request pipeline itself
// imposes no deadline.
type Config struct {
	Host           string        `env:"ONTRAIL_HOST"`
	StoreDriver    string        `env:"ONTRAIL_STORE"`
	StorePath      string        `env:"ONTRAIL_STORE_PATH"`
	RedisAddr      string        `env:"ONTRAIL_REDIS_ADDR"`
	RedisPrefix    string        `env:"ONTRAIL_REDIS_PREFIX"`
	LogLevel       string        `env:"ONTRAIL_LOG_LEVEL"`
	LogFormat      string        `env:"ONTRAIL_LOG_FORMAT"`
	Debug          bool          `env:"ONTRAIL_DEBUG"`
	RequestTimeout time.Duration `env:"ONTRAIL_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Host = "http://localhost:3000"
	c.StoreDriver = StoreSQLite
	c.StorePath = "ontrail.db"
	c.RedisAddr = "localhost:6379"
	c.RedisPrefix = "ontrail:"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Debug = false
	c.RequestTimeout = 30 * time.Second
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreSQLite, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. It panics on malformed input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg, ".env")
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

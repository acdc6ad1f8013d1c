package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ontrail/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointers tell
// absent keys from zero values; the timeout is a duration string like "10s".
type JsonConfig struct {
	Host           *string `json:"host"`
	StoreDriver    *string `json:"store_driver"`
	StorePath      *string `json:"store_path"`
	RedisAddr      *string `json:"redis_addr"`
	RedisPrefix    *string `json:"redis_prefix"`
	LogLevel       *string `json:"log_level"`
	LogFormat      *string `json:"log_format"`
	Debug          *bool   `json:"debug"`
	RequestTimeout *string `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Read, unmarshal and
// duration errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.Host, jc.Host)
	set(&cfg.StoreDriver, jc.StoreDriver)
	set(&cfg.StorePath, jc.StorePath)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.Debug, jc.Debug)

	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// parseEnv loads envFile into the process environment (variables already set
// win), then overlays every ONTRAIL_* variable that is present. A missing
// envFile is not an error.
func parseEnv(cfg *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

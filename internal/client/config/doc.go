// Package config loads runtime configuration for the OnTrail CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. A .env file in the working directory, if present (joho/godotenv).
//  4. ONTRAIL_* environment variables (ilyakaznacheev/cleanenv).
//  5. Command-line flags, which override everything else.
//
// Supported flags
//
//	-h string   backend origin
//	-s string   store driver: sqlite, memory or redis
//	-p string   sqlite file path
//	-d          debug: log response bodies
//	-t int      per-command timeout (seconds)
//
// # JSON schema
//
//	{
//	  "host": "https://api.ontrail.app",
//	  "store_driver": "sqlite",
//	  "store_path": "ontrail.db",
//	  "redis_addr": "localhost:6379",
//	  "redis_prefix": "ontrail:",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "debug": false,
//	  "request_timeout": "30s"
//	}
//
// Keys left out of the file keep their earlier value.
package config

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with FLIXCLI_* environment variables. A .env file
// in the working directory is loaded first if present; real environment
// variables win over .env entries (godotenv does not overwrite).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("FLIXCLI_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("FLIXCLI_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("FLIXCLI_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("FLIXCLI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

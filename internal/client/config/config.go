// Package config holds runtime settings for the flixcli client and loads
// them from, in order of increasing precedence: built-in defaults, a JSON
// file, environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the flixcli client.
//
// Fields:
//   - ServerURL: base URL of the movies-flix HTTP API.
//   - RequestTimeout: per-request timeout for gateway calls.
//   - DatabasePath: path of the local SQLite database holding the session.
//   - LogLevel: zerolog level name (debug, info, warn, error).
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "https://movies-flix123-4387886b5662.herokuapp.com"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "flixcli.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given), the environment, and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

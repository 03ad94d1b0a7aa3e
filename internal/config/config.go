package config

import "time"

// Config holds runtime settings for the logbook client.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - DatabasePath: path of the local sqlite database holding the session token.
//   - LogPath: file the structured log is written to (the TUI owns stdout).
//   - RequestTimeout: bound applied to every outbound API call.
//   - DigestLimit: how many notifications the bell digest shows.
type Config struct {
	ServerURL      string
	DatabasePath   string
	LogPath        string
	RequestTimeout time.Duration
	DigestLimit    int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "logbook.db"
	c.LogPath = "logbook.log"
	c.RequestTimeout = 10 * time.Second
	c.DigestLimit = 5
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dkorchagin/logbook/internal/flagx"
	"github.com/dkorchagin/logbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the request timeout either as a string
// like "10s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DatabasePath   string         `json:"database_path"`
	LogPath        string         `json:"log_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DigestLimit    int            `json:"digest_limit"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no config flag is given, nothing is loaded. Only
// fields present in the file override cfg. Panics on read or unmarshal errors
// (caller should recover if desired); this mirrors flag parsing, where a
// malformed command line also aborts startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogPath != "" {
		cfg.LogPath = jc.LogPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DigestLimit != 0 {
		cfg.DigestLimit = jc.DigestLimit
	}
}

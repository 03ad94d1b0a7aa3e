// Package config loads runtime configuration for the logbook client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-d string   path of the local sqlite database
//	-o string   path of the log file
//	-t int      request timeout (seconds)
//	-n int      digest size of the notification bell
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://logbook.example",
//	  "database_path": "logbook.db",
//	  "log_path": "logbook.log",
//	  "request_timeout": "10s",
//	  "digest_limit": 5
//	}
//
// Note: This package does not read environment variables; use the JSON file
// or flags to configure values.
package config

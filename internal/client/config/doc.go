// Package config loads runtime configuration for the estate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-i int      online status check interval (seconds)
//	-t int      upload timeout (seconds)
//	-n int      max concurrent uploads
//	-d string   path to the local state database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com/api",
//	  "online_check_interval": "30s",
//	  "upload_timeout": "15s",
//	  "max_concurrent_uploads": 3,
//	  "database_path": "estate.db"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

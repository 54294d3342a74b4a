package config

import "time"

// Config holds runtime settings for the estate CLI.
//
// Fields:
//   - BaseURL: root URL of the backend REST API, including the /api prefix.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - UploadTimeout: client-side budget for a single image upload.
//   - MaxConcurrentUploads: global cap on simultaneously running uploads.
//   - DatabasePath: location of the local SQLite state database.
type Config struct {
	BaseURL              string
	OnlineCheckInterval  time.Duration
	UploadTimeout        time.Duration
	MaxConcurrentUploads int
	DatabasePath         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:4000/api"
	c.OnlineCheckInterval = 30 * time.Second
	c.UploadTimeout = 15 * time.Second
	c.MaxConcurrentUploads = 3
	c.DatabasePath = "estate.db"
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

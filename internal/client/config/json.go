package config

import (
	"encoding/json"
	"os"

	"github.com/elliot09alderson/estate-client/internal/flagx"
	"github.com/elliot09alderson/estate-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL              string         `json:"base_url"`
	OnlineCheckInterval  timex.Duration `json:"online_check_interval"`
	UploadTimeout        timex.Duration `json:"upload_timeout"`
	MaxConcurrentUploads int            `json:"max_concurrent_uploads"`
	DatabasePath         string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override the current Config; zero values
// are treated as "not set". Panics on read or unmarshal errors (caller should
// recover if desired).
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.UploadTimeout.Duration != 0 {
		cfg.UploadTimeout = jc.UploadTimeout.Duration
	}
	if jc.MaxConcurrentUploads != 0 {
		cfg.MaxConcurrentUploads = jc.MaxConcurrentUploads
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:4000/api", c.BaseURL)
	assert.Equal(t, 30*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 15*time.Second, c.UploadTimeout)
	assert.Equal(t, 3, c.MaxConcurrentUploads)
	assert.Equal(t, "estate.db", c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:4000/api", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.UploadTimeout)
}

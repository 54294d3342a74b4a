package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "http://api.local/api", "-i", "10", "-t", "20", "-n", "5", "-d", "local.db"},
			expected: &Config{
				BaseURL:              "http://api.local/api",
				OnlineCheckInterval:  10 * time.Second,
				UploadTimeout:        20 * time.Second,
				MaxConcurrentUploads: 5,
				DatabasePath:         "local.db",
			},
		},
		{
			name:        "incorrect check interval",
			args:        []string{"cmd", "-a", "http://api.local/api", "-i", "abc"},
			expectPanic: true,
			expected:    &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

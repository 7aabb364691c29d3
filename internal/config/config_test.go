package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
[deck]
size = 5

[summary]
timeout = "2s"

[gesture]
cell_width = 10.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Deck.Size)
	assert.Equal(t, 2*time.Second, cfg.Summary.Timeout.Duration)
	assert.Equal(t, 10.5, cfg.Gesture.CellWidth)
	assert.Equal(t, "https://cataas.com/api/cats", cfg.Source.Endpoint)
	assert.Equal(t, 4, cfg.Preload.Workers)
}

func TestLoadZeroSummaryTimeoutIsUnbounded(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[summary]\ntimeout = \"0s\"\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Summary.Timeout.Duration)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[deck\nsize = "))
	assert.Error(t, err)
}

func TestLoadBadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "[source]\ntimeout = \"soon\"\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero deck", func(c *Config) { c.Deck.Size = 0 }},
		{"empty endpoint", func(c *Config) { c.Source.Endpoint = "" }},
		{"zero width", func(c *Config) { c.Source.Width = 0 }},
		{"no workers", func(c *Config) { c.Preload.Workers = 0 }},
		{"negative summary timeout", func(c *Config) { c.Summary.Timeout.Duration = -time.Second }},
		{"zero cell width", func(c *Config) { c.Gesture.CellWidth = 0 }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

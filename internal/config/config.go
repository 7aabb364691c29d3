package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration. Nothing in it is ever written
// back to disk.
type Config struct {
	Deck    DeckConfig    `toml:"deck"`
	Source  SourceConfig  `toml:"source"`
	Preload PreloadConfig `toml:"preload"`
	Summary SummaryConfig `toml:"summary"`
	Gesture GestureConfig `toml:"gesture"`
}

// DeckConfig controls the session size.
type DeckConfig struct {
	Size int `toml:"size"`
}

// SourceConfig describes the remote batch endpoint and its image templates.
type SourceConfig struct {
	Endpoint    string   `toml:"endpoint"`     // batch endpoint, receives ?limit=N
	ImageURL    string   `toml:"image_url"`    // per-item template: id, width, height, token
	FallbackURL string   `toml:"fallback_url"` // generic template: width, height, token
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	Timeout     Duration `toml:"timeout"`
	MinInterval Duration `toml:"min_interval"` // pacing between batch requests
}

// PreloadConfig controls background image loading.
type PreloadConfig struct {
	Workers     int      `toml:"workers"`
	MinInterval Duration `toml:"min_interval"` // pacing between image requests
	ArtWidth    int      `toml:"art_width"`    // terminal columns
	ArtHeight   int      `toml:"art_height"`   // terminal rows
}

// SummaryConfig controls the summary screen.
type SummaryConfig struct {
	// Timeout bounds the wait for liked images. Zero waits forever.
	Timeout Duration `toml:"timeout"`
}

// GestureConfig maps terminal cells to drag distance.
type GestureConfig struct {
	CellWidth float64 `toml:"cell_width"` // pixels per terminal column
}

// Duration wraps time.Duration so it can be written as "10s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Deck: DeckConfig{Size: 12},
		Source: SourceConfig{
			Endpoint:    "https://cataas.com/api/cats",
			ImageURL:    "https://cataas.com/cat/%s?width=%d&height=%d&random=%s",
			FallbackURL: "https://cataas.com/cat?width=%d&height=%d&random=%s",
			Width:       600,
			Height:      600,
			Timeout:     Duration{10 * time.Second},
			MinInterval: Duration{500 * time.Millisecond},
		},
		Preload: PreloadConfig{
			Workers:     4,
			MinInterval: Duration{100 * time.Millisecond},
			ArtWidth:    32,
			ArtHeight:   16,
		},
		Summary: SummaryConfig{Timeout: Duration{10 * time.Second}},
		Gesture: GestureConfig{CellWidth: 8},
	}
}

// DataDir returns ~/.kittyswipe, the home of the config file and logs.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kittyswipe"
	}
	return filepath.Join(home, ".kittyswipe")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// Load reads config from path. A missing file yields defaults; keys absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot produce a working session.
func (c *Config) Validate() error {
	switch {
	case c.Deck.Size < 1:
		return fmt.Errorf("deck.size must be at least 1, got %d", c.Deck.Size)
	case c.Source.Endpoint == "":
		return errors.New("source.endpoint must not be empty")
	case c.Source.Width <= 0 || c.Source.Height <= 0:
		return fmt.Errorf("source width/height must be positive, got %dx%d", c.Source.Width, c.Source.Height)
	case c.Source.Timeout.Duration < 0:
		return errors.New("source.timeout must not be negative")
	case c.Preload.Workers < 1:
		return fmt.Errorf("preload.workers must be at least 1, got %d", c.Preload.Workers)
	case c.Preload.ArtWidth <= 0 || c.Preload.ArtHeight <= 0:
		return fmt.Errorf("preload art size must be positive, got %dx%d", c.Preload.ArtWidth, c.Preload.ArtHeight)
	case c.Summary.Timeout.Duration < 0:
		return errors.New("summary.timeout must not be negative")
	case c.Gesture.CellWidth <= 0:
		return fmt.Errorf("gesture.cell_width must be positive, got %v", c.Gesture.CellWidth)
	}
	return nil
}

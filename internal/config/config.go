// Package config reads and writes TOML config files for navdeck.
//
// The config file lives at ~/.config/navdeck/config.toml. Every field has a
// default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hinke/navdeck/internal/logging"
)

// Config is the top-level configuration structure.
type Config struct {
	Panels   PanelsConfig    `toml:"panels"`
	Triggers []TriggerConfig `toml:"triggers"`
	Content  ContentConfig   `toml:"content"`
	Prefs    PrefsConfig     `toml:"prefs"`
	Log      LogConfig       `toml:"log"`
	Layout   LayoutConfig    `toml:"layout"`
}

// PanelsConfig holds dropdown behaviour settings.
type PanelsConfig struct {
	CloseDelayMS int `toml:"close_delay_ms"`
}

// TriggerConfig declares one navbar entry and the content category its
// dropdown loads.
type TriggerConfig struct {
	ID       string `toml:"id"`
	Label    string `toml:"label"`
	Category string `toml:"category"`
}

// ContentConfig selects where dropdown content comes from.
type ContentConfig struct {
	File      string `toml:"file,omitempty"`
	RemoteURL string `toml:"remote_url,omitempty"`
	LatencyMS int    `toml:"latency_ms,omitempty"`
}

// PrefsConfig holds the location of the preferences database.
type PrefsConfig struct {
	Path string `toml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// LayoutConfig holds navbar layout thresholds, in terminal cells.
type LayoutConfig struct {
	CompactWidth int `toml:"compact_width"`
	ScrolledAt   int `toml:"scrolled_at"`
	HideAt       int `toml:"hide_at"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Panels: PanelsConfig{
			CloseDelayMS: 150,
		},
		Triggers: DefaultTriggers(),
		Prefs: PrefsConfig{
			Path: defaultDataPath("prefs.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   logging.DefaultFile(),
		},
		Layout: LayoutConfig{
			CompactWidth: 60,
			ScrolledAt:   3,
			HideAt:       6,
		},
	}
}

// DefaultTriggers returns the stock navbar entries.
func DefaultTriggers() []TriggerConfig {
	return []TriggerConfig{
		{ID: "services", Label: "Services", Category: "services"},
		{ID: "about", Label: "About", Category: "about"},
		{ID: "work", Label: "Work", Category: "work"},
	}
}

// DefaultPath returns the platform-appropriate path to the config file.
// On most systems this is ~/.config/navdeck/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fall back to HOME/.config on failure.
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "navdeck", "config.toml")
}

func defaultDataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "navdeck", name)
}

// Load reads the config from the default path.
// If the file does not exist, it returns a default Config (no error).
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the config from the given path.
// If the file does not exist, it returns a default Config (no error).
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	// Triggers from the file replace the defaults rather than merging.
	cfg.Triggers = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Triggers) == 0 {
		cfg.Triggers = DefaultTriggers()
	}

	return cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the config to the given path.
// It creates the parent directory with mode 0o700 and the file with mode 0o600.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// CloseDelay returns the dropdown hover-out debounce.
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.Panels.CloseDelayMS) * time.Millisecond
}

// ContentLatency returns the artificial content latency, zero when unset.
func (c *Config) ContentLatency() time.Duration {
	return time.Duration(c.Content.LatencyMS) * time.Millisecond
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Panels.CloseDelayMS < 0 {
		errs = append(errs, fmt.Errorf("panels.close_delay_ms must not be negative, got %d", c.Panels.CloseDelayMS))
	}
	if c.Content.LatencyMS < 0 {
		errs = append(errs, fmt.Errorf("content.latency_ms must not be negative, got %d", c.Content.LatencyMS))
	}
	if len(c.Triggers) == 0 {
		errs = append(errs, errors.New("at least one trigger is required"))
	}

	seen := make(map[string]bool, len(c.Triggers))
	for i, t := range c.Triggers {
		switch {
		case t.ID == "":
			errs = append(errs, fmt.Errorf("triggers[%d]: id is required", i))
		case seen[t.ID]:
			errs = append(errs, fmt.Errorf("triggers[%d]: duplicate id %q", i, t.ID))
		}
		seen[t.ID] = true
	}

	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not a known level", c.Log.Level))
	}
	if c.Log.Format != "" && c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Package config handles configuration loading and validation for signup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Theme string `yaml:"theme"`

	// SubmitDelay is how long the simulated submission takes.
	SubmitDelay time.Duration `yaml:"submit_delay"`

	// ConfirmRedirect is how long the confirmation step waits before
	// advancing on its own. Zero disables the automatic advance.
	ConfirmRedirect time.Duration `yaml:"confirm_redirect"`

	// CursorIdle is the quiet period after mouse motion before a
	// cursor_position activity entry is recorded.
	CursorIdle time.Duration `yaml:"cursor_idle"`

	// DefaultTimezone preselects the time zone on the locale step.
	DefaultTimezone string `yaml:"default_timezone"`

	Activity ActivityConfig `yaml:"activity"`
}

// ActivityConfig controls the per-step activity log.
type ActivityConfig struct {
	// Enabled toggles writing activity entries to the logger. Entries are
	// always kept in memory for the step summary.
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:           styles.DefaultTheme,
		SubmitDelay:     1500 * time.Millisecond,
		ConfirmRedirect: 5 * time.Second,
		CursorIdle:      time.Second,
		DefaultTimezone: registration.DefaultCatalog().DefaultTimezone,
		Activity:        ActivityConfig{Enabled: true},
	}
}

// Load reads configuration from configPath. A missing file yields the
// defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills values the file explicitly blanked.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.CursorIdle == 0 {
		c.CursorIdle = defaults.CursorIdle
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = defaults.DefaultTimezone
	}
}

// Palette returns the palette named by Theme. Validate guarantees it exists.
func (c *Config) Palette() styles.Palette {
	p, ok := styles.GetPalette(c.Theme)
	if !ok {
		p, _ = styles.GetPalette(styles.DefaultTheme)
	}
	return p
}

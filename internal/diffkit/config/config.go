// Package config provides diffkit CLI configuration management.
package config

import (
	"os"
	"path/filepath"

	appconfig "github.com/RobinCoderZhao/diffkit/pkg/config"
	"github.com/RobinCoderZhao/diffkit/pkg/differ"
)

// configFile is the name looked up in the project directory and the home
// directory, in that order.
const configFile = ".diffkit.yaml"

// DiffkitConfig is the main configuration for the diffkit CLI.
type DiffkitConfig struct {
	Diff   DiffConfig   `yaml:"diff"`
	Render RenderConfig `yaml:"render"`
	Limits LimitsConfig `yaml:"limits"`
}

// DiffConfig holds comparison settings.
type DiffConfig struct {
	Mode             string `yaml:"mode" env:"DIFFKIT_MODE"` // "lines", "words" or "characters"
	IgnoreCase       bool   `yaml:"ignore_case" env:"DIFFKIT_IGNORE_CASE"`
	IgnoreWhitespace bool   `yaml:"ignore_whitespace" env:"DIFFKIT_IGNORE_WHITESPACE"`
}

// RenderConfig holds display settings.
type RenderConfig struct {
	Color   bool `yaml:"color" env:"DIFFKIT_COLOR"`
	Context int  `yaml:"context" env:"DIFFKIT_CONTEXT"` // context lines around changes
	Width   int  `yaml:"width" env:"DIFFKIT_WIDTH"`     // side-by-side total width
}

// LimitsConfig bounds the work a single comparison may do.
type LimitsConfig struct {
	MaxCells int `yaml:"max_cells" env:"DIFFKIT_MAX_CELLS"`
}

// DefaultConfig returns a DiffkitConfig with sensible defaults.
func DefaultConfig() DiffkitConfig {
	return DiffkitConfig{
		Diff: DiffConfig{
			Mode: differ.ModeLines.String(),
		},
		Render: RenderConfig{
			Color:   true,
			Context: 3,
			Width:   120,
		},
		Limits: LimitsConfig{
			MaxCells: differ.DefaultMaxCells,
		},
	}
}

// Load loads diffkit configuration from the standard config file locations.
// Environment variables override file values and apply even when no config
// file exists.
func Load() (DiffkitConfig, error) {
	cfg := DefaultConfig()

	// Check project-level config first
	if _, err := os.Stat(configFile); err == nil {
		if err := appconfig.Load(configFile, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Then check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(home, configFile)
		if err := appconfig.LoadOrDefault(globalPath, &cfg); err != nil {
			return cfg, err
		}
	}

	appconfig.ApplyEnv(&cfg)
	return cfg, nil
}

// Options converts the comparison settings into engine options.
func (c DiffkitConfig) Options() (differ.Options, error) {
	mode, err := differ.ParseMode(c.Diff.Mode)
	if err != nil {
		return differ.Options{}, err
	}
	return differ.Options{
		Mode:             mode,
		IgnoreCase:       c.Diff.IgnoreCase,
		IgnoreWhitespace: c.Diff.IgnoreWhitespace,
		MaxCells:         c.Limits.MaxCells,
	}, nil
}

// RenderOptions converts the display settings into renderer options.
func (c DiffkitConfig) RenderOptions() differ.RenderOptions {
	return differ.RenderOptions{
		Color:   c.Render.Color,
		Context: c.Render.Context,
		Width:   c.Render.Width,
	}
}

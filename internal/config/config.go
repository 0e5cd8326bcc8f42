// Package config handles glyphrays CLI configuration loading and management.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/glyphrays/atlas"
	"github.com/gogpu/glyphrays/rays"
)

// Font loaders.
const (
	LoaderSFNT   = "sfnt"
	LoaderGoText = "gotext"
)

// Config holds all CLI settings.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Font    FontConfig    `yaml:"font"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig holds the hierarchy build policy.
type BuildConfig struct {
	MaxRecursion          int     `yaml:"max_recursion"`
	SplitThreshold        int     `yaml:"split_threshold"`
	ExpectedMinRenderSize float64 `yaml:"expected_min_render_size"`
	FillRule              string  `yaml:"fill_rule"` // nonzero, oddeven, complement-nonzero, complement-oddeven
}

// FontConfig holds font loading settings.
type FontConfig struct {
	Path   string `yaml:"path"`   // Empty selects the built-in Go Regular font
	Loader string `yaml:"loader"` // sfnt or gotext
}

// AtlasConfig holds glyph data store settings.
type AtlasConfig struct {
	Capacity  int `yaml:"capacity"`  // In 32-bit words
	Alignment int `yaml:"alignment"` // Power of 2
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			MaxRecursion:          rays.DefaultMaxRecursion,
			SplitThreshold:        rays.DefaultSplitThreshold,
			ExpectedMinRenderSize: rays.DefaultExpectedMinRenderSize,
			FillRule:              "nonzero",
		},
		Font: FontConfig{
			Loader: LoaderSFNT,
		},
		Atlas: AtlasConfig{
			Capacity:  atlas.DefaultCapacity,
			Alignment: 1,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	rc := c.RaysConfig()
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("config: build: %w", err)
	}
	if _, err := c.Fill(); err != nil {
		return err
	}
	switch c.Font.Loader {
	case LoaderSFNT, LoaderGoText:
	default:
		return fmt.Errorf("config: font.loader %q: want %s or %s", c.Font.Loader, LoaderSFNT, LoaderGoText)
	}
	ac := c.AtlasConfig()
	if err := ac.Validate(); err != nil {
		return fmt.Errorf("config: atlas: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// RaysConfig returns the build section as a rays.Config.
func (c *Config) RaysConfig() rays.Config {
	return rays.Config{
		MaxRecursion:          c.Build.MaxRecursion,
		SplitThreshold:        c.Build.SplitThreshold,
		ExpectedMinRenderSize: c.Build.ExpectedMinRenderSize,
	}
}

// AtlasConfig returns the atlas section as an atlas.Config.
func (c *Config) AtlasConfig() atlas.Config {
	return atlas.Config{
		Capacity:  c.Atlas.Capacity,
		Alignment: c.Atlas.Alignment,
	}
}

// Fill parses the configured fill rule.
func (c *Config) Fill() (rays.FillRule, error) {
	switch strings.ToLower(c.Build.FillRule) {
	case "nonzero", "non-zero":
		return rays.FillNonZero, nil
	case "oddeven", "odd-even", "evenodd":
		return rays.FillOddEven, nil
	case "complement-nonzero":
		return rays.FillComplementNonZero, nil
	case "complement-oddeven":
		return rays.FillComplementOddEven, nil
	}
	return 0, fmt.Errorf("config: unknown build.fill_rule %q", c.Build.FillRule)
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("config: logging.level: %w", err)
	}
	return l, nil
}

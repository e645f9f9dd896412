// Package config provides configuration management for fsel.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runger/fsel/internal/rank"
)

// Config represents the fsel configuration.
type Config struct {
	Match MatchConfig `yaml:"match"`
	Dmenu DmenuConfig `yaml:"dmenu"`
	UI    UIConfig    `yaml:"ui"`
	Log   LogConfig   `yaml:"log"`
	// Terminal is the command used to wrap Terminal=true desktop entries,
	// e.g. "foot -e".
	Terminal string `yaml:"terminal"`
}

// MatchConfig holds ranking engine settings.
type MatchConfig struct {
	Mode                  string `yaml:"mode"`                     // fuzzy or exact
	PrefixDepth           int    `yaml:"prefix_depth"`             // max query length for prefix kinds
	FrecencyHalfLifeHours int    `yaml:"frecency_half_life_hours"` // usage decay half-life
}

// DmenuConfig holds defaults for dmenu mode; flags override these.
type DmenuConfig struct {
	Delimiter     string `yaml:"delimiter"`      // column delimiter, empty = whitespace
	MatchFields   []int  `yaml:"match_fields"`   // 1-based columns to match on
	DisplayFields []int  `yaml:"display_fields"` // 1-based columns to display
	OutputFields  []int  `yaml:"output_fields"`  // 1-based columns to print
}

// UIConfig holds picker appearance and behavior settings.
type UIConfig struct {
	HighlightColor   string `yaml:"highlight_color"`    // ANSI color of the selection bar
	Prompt           string `yaml:"prompt"`             // query prompt text
	PinIcon          string `yaml:"pin_icon"`           // marker for pinned entries
	HardStop         bool   `yaml:"hard_stop"`          // no selection wrap at list edges
	HideBeforeTyping bool   `yaml:"hide_before_typing"` // hide the list until the first keystroke
	ShowLineNumbers  bool   `yaml:"show_line_numbers"`  // prefix entries with rank position
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // log file path, empty = stderr only
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			Mode:                  "fuzzy",
			PrefixDepth:           3,
			FrecencyHalfLifeHours: 72,
		},
		Dmenu: DmenuConfig{
			Delimiter: "",
		},
		UI: UIConfig{
			HighlightColor: "212",
			Prompt:         "> ",
			PinIcon:        "*",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Terminal: "",
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file. A missing file
// yields the defaults; a present but invalid file is an error, never a
// silent fallback.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every field the engine and picker will consume. The
// engine assumes validated inputs, so rejection happens here, naming the
// offending key.
func (c *Config) Validate() error {
	switch c.Match.Mode {
	case "fuzzy", "exact":
	default:
		return fmt.Errorf("match.mode must be fuzzy or exact (got: %s)", c.Match.Mode)
	}

	if c.Match.PrefixDepth < 0 {
		return fmt.Errorf("match.prefix_depth must be >= 0 (got: %d)", c.Match.PrefixDepth)
	}

	if c.Match.FrecencyHalfLifeHours <= 0 {
		return fmt.Errorf("match.frecency_half_life_hours must be > 0 (got: %d)", c.Match.FrecencyHalfLifeHours)
	}

	for _, group := range []struct {
		key    string
		fields []int
	}{
		{"dmenu.match_fields", c.Dmenu.MatchFields},
		{"dmenu.display_fields", c.Dmenu.DisplayFields},
		{"dmenu.output_fields", c.Dmenu.OutputFields},
	} {
		for _, f := range group.fields {
			if f < 1 {
				return fmt.Errorf("%s indices must be >= 1 (got: %d)", group.key, f)
			}
		}
	}

	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	return nil
}

// RankOptions translates the match section into engine options.
func (c *Config) RankOptions() rank.Options {
	mode := rank.ModeFuzzy
	if c.Match.Mode == "exact" {
		mode = rank.ModeExact
	}
	return rank.Options{
		Mode:        mode,
		PrefixDepth: c.Match.PrefixDepth,
		HalfLife:    time.Duration(c.Match.FrecencyHalfLifeHours) * time.Hour,
	}
}

// Projection translates the dmenu section into a column projection.
func (c *Config) Projection() rank.Projection {
	return rank.Projection{
		MatchFields:   c.Dmenu.MatchFields,
		DisplayFields: c.Dmenu.DisplayFields,
		OutputFields:  c.Dmenu.OutputFields,
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

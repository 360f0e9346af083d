package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all gridedit configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Undo/redo timeline
	History HistoryConfig `yaml:"history"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// HistoryConfig configures the undo/redo timeline.
type HistoryConfig struct {
	// MaxDepth bounds the number of stored snapshots (0 = unlimited)
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "gridedit",
		Version: "0.3.0",

		History: HistoryConfig{
			MaxDepth: 0,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// DefaultPath returns the default location of config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".gridedit", "config.yaml")
	}
	return filepath.Join(dir, "gridedit", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("GRIDEDIT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if depth := os.Getenv("GRIDEDIT_HISTORY_DEPTH"); depth != "" {
		// Unparseable values are ignored, Validate never sees them
		if n, err := strconv.Atoi(depth); err == nil {
			c.History.MaxDepth = n
		}
	}
	if level := os.Getenv("GRIDEDIT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("GRIDEDIT_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}

// Valid option values.
var (
	ValidThemes     = []string{ThemeAuto, ThemeLight, ThemeDark}
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
	ValidLogFormats = []string{"text", "console", "json"}
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.History.MaxDepth < 0 {
		return fmt.Errorf("invalid history.max_depth: %d (must be >= 0)", c.History.MaxDepth)
	}
	if c.History.MaxDepth == 1 {
		return fmt.Errorf("invalid history.max_depth: 1 leaves nothing to undo (use 0 for unlimited or >= 2)")
	}
	if c.UI.Theme != "" && !slices.Contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if c.Logging.Format != "" && !slices.Contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}

// Package config provides configuration management for mdp.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultListen       = "127.0.0.1:8035"
	DefaultTheme        = "light"
	DefaultPreviewDelay = 100  // milliseconds
	DefaultSaveDelay    = 1000 // milliseconds
)

// Themes lists the accepted values for Config.Theme.
var Themes = []string{"light", "dark"}

// Config holds the mdp configuration.
type Config struct {
	Listen         string `yaml:"listen,omitempty"`
	DataDir        string `yaml:"data_dir,omitempty"`
	Theme          string `yaml:"theme,omitempty"`
	PreviewDelayMS int    `yaml:"preview_delay_ms,omitempty"`
	SaveDelayMS    int    `yaml:"save_delay_ms,omitempty"`
	OutputFormat   string `yaml:"output_format,omitempty"`
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen is required")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if !ValidTheme(c.Theme) {
		return fmt.Errorf("theme must be one of %v", Themes)
	}
	if c.PreviewDelayMS < 0 {
		return errors.New("preview_delay_ms must not be negative")
	}
	if c.SaveDelayMS < 0 {
		return errors.New("save_delay_ms must not be negative")
	}
	return nil
}

// ValidTheme reports whether theme is one of Themes.
func ValidTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// ApplyDefaults fills every empty field with its default value.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.PreviewDelayMS == 0 {
		c.PreviewDelayMS = DefaultPreviewDelay
	}
	if c.SaveDelayMS == 0 {
		c.SaveDelayMS = DefaultSaveDelay
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Unparseable delays are ignored.
func (c *Config) LoadFromEnv() {
	if listen := os.Getenv("MDP_LISTEN"); listen != "" {
		c.Listen = listen
	}
	if dir := os.Getenv("MDP_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if theme := os.Getenv("MDP_THEME"); theme != "" {
		c.Theme = theme
	}
	if v, ok := getEnvInt("MDP_PREVIEW_DELAY_MS"); ok {
		c.PreviewDelayMS = v
	}
	if v, ok := getEnvInt("MDP_SAVE_DELAY_MS"); ok {
		c.SaveDelayMS = v
	}
}

func getEnvInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdp", "config.yml")
	}

	// Fall back to ~/.config/mdp/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdp", "config.yml")
	}

	return filepath.Join(home, ".config", "mdp", "config.yml")
}

// DefaultDataDir returns the default directory for saved documents.
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "mdp")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdp", "data")
	}

	return filepath.Join(home, ".local", "share", "mdp")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides it with environment
// variables and fills in defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

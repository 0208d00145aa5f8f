package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StatusCheckStrict = "strict"
	StatusCheckIgnore = "ignore"
)

// Config holds user settings. The chart year and endpoint are fixed and
// deliberately absent.
type Config struct {
	// Output
	OutputDir string `yaml:"output_dir"`

	// Network
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRedirects   int `yaml:"max_redirects"`

	// Failure handling
	StatusCheck string `yaml:"status_check"` // "strict" or "ignore"
	KeepGoing   bool   `yaml:"keep_going"`

	// UI Settings
	ShowProgress bool   `yaml:"show_progress"`
	ColorTheme   string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      ".",
		TimeoutSeconds: 30,
		MaxRedirects:   10,
		StatusCheck:    StatusCheckStrict,
		KeepGoing:      false,
		ShowProgress:   true,
		ColorTheme:     "auto",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = 10
	}
	if !isValidStatusCheck(cfg.StatusCheck) {
		cfg.StatusCheck = StatusCheckStrict
	}
	if !isValidTheme(cfg.ColorTheme) {
		cfg.ColorTheme = "auto"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
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
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func isValidStatusCheck(s string) bool {
	return s == StatusCheckStrict || s == StatusCheckIgnore
}

func isValidTheme(theme string) bool {
	validThemes := []string{"auto", "dark", "light"}
	for _, valid := range validThemes {
		if theme == valid {
			return true
		}
	}
	return false
}

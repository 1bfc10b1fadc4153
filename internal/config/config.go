// Package config provides configuration loading for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or come
// from CLI flags and environment variables.
type Config struct {
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	Port           int    `json:"port,omitempty"`            // HTTP server port
	DataPath       string `json:"data_path,omitempty"`       // Path to the persisted CV JSON file
	DebounceMillis int    `json:"debounce_millis,omitempty"` // Quiet interval before a save is written
	ChromePath     string `json:"chrome_path,omitempty"`     // Browser binary for PDF export
	Verbose        bool   `json:"verbose,omitempty"`         // Print debug logging
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	home, err := os.UserHomeDir()
	dataPath := "cv.json"
	if err == nil {
		dataPath = filepath.Join(home, ".cv-studio", "cv.json")
	}
	return Config{
		Port:           8080,
		DataPath:       dataPath,
		DebounceMillis: 800,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables onto the configuration. Environment
// values win over file values.
func (c *Config) FromEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("CV_STUDIO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("CV_STUDIO_DATA"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.DebounceMillis < 0 {
		return fmt.Errorf("config error: 'debounce_millis' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from
// defaults. File values win over defaults; flags are applied after this.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DataPath == "" {
		result.DataPath = defaults.DataPath
	}
	if result.DebounceMillis == 0 {
		result.DebounceMillis = defaults.DebounceMillis
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	return result
}

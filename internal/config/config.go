// Package config provides configuration loading and validation for hz.
// Config lives at .hz/config.yaml; loaded values are merged with defaults
// and validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hz configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the hz state directory
const ConfigDirName = ".hz"

// Config holds all hz configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Locate  LocateConfig  `yaml:"locate"`
	Map     MapConfig     `yaml:"map"`
	Output  OutputConfig  `yaml:"output"`
}

// StorageConfig selects the durable kv backend
type StorageConfig struct {
	// Backend is "sqlite" (single db file) or "dolt" (versioned repo)
	Backend string `yaml:"backend"`
}

// LocateConfig bounds position acquisition
type LocateConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// MapConfig holds the viewport fallback override
type MapConfig struct {
	// DefaultLatitude/DefaultLongitude override the built-in fallback
	// center when both are set
	DefaultLatitude  *float64 `yaml:"default_latitude,omitempty"`
	DefaultLongitude *float64 `yaml:"default_longitude,omitempty"`
}

// OutputConfig holds output formatting defaults
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .hz/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .hz directory by walking up from startDir.
// Returns the path to the .hz directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .hz directory if it doesn't exist.
// Returns the path to the .hz directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if !IsValidBackend(cfg.Storage.Backend) {
		return fmt.Errorf("%w: storage backend must be one of %v, got %q",
			ErrInvalidConfig, ValidBackends, cfg.Storage.Backend)
	}

	if cfg.Locate.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: locate timeout_seconds must be positive, got %d",
			ErrInvalidConfig, cfg.Locate.TimeoutSeconds)
	}

	// The fallback center override is all-or-nothing
	if (cfg.Map.DefaultLatitude == nil) != (cfg.Map.DefaultLongitude == nil) {
		return fmt.Errorf("%w: map default_latitude and default_longitude must be set together",
			ErrInvalidConfig)
	}
	if cfg.Map.DefaultLatitude != nil {
		if *cfg.Map.DefaultLatitude < -90 || *cfg.Map.DefaultLatitude > 90 {
			return fmt.Errorf("%w: map default_latitude out of range: %f",
				ErrInvalidConfig, *cfg.Map.DefaultLatitude)
		}
		if *cfg.Map.DefaultLongitude < -180 || *cfg.Map.DefaultLongitude > 180 {
			return fmt.Errorf("%w: map default_longitude out of range: %f",
				ErrInvalidConfig, *cfg.Map.DefaultLongitude)
		}
	}

	if !IsValidFormat(cfg.Output.DefaultFormat) {
		return fmt.Errorf("%w: default_format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.DefaultFormat)
	}

	return nil
}

// SaveDefault writes the default configuration to .hz/config.yaml in workDir.
// Creates the .hz directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}

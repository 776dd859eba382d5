// Package config provides configuration loading and management for pixel-veil.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"pixel-veil/internal/logger"
	"pixel-veil/internal/resample"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no -config flag is given
const DefaultPath = "pixel-veil.yaml"

// Config represents the application configuration loaded from YAML
type Config struct {
	Processing struct {
		// Interpolation is the resampling kernel used when image sizes differ
		Interpolation string `yaml:"interpolation"`

		// Workers bounds the goroutines used per image pass
		Workers int `yaml:"workers"`

		// Backend selects the image I/O library: native or opencv
		Backend string `yaml:"backend"`
	} `yaml:"processing"`

	Output struct {
		CarrierDir    string `yaml:"carrierDir"`
		CarrierBase   string `yaml:"carrierBase"`
		RecoveredDir  string `yaml:"recoveredDir"`
		RecoveredBase string `yaml:"recoveredBase"`
	} `yaml:"output"`

	Logging struct {
		Level string `yaml:"level"`

		// File receives JSON logs in addition to the console when set
		File string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.Interpolation = string(resample.DefaultMethod)
	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.Backend = "native"

	cfg.Output.CarrierDir = "EncryptedImages"
	cfg.Output.CarrierBase = "encrypted_image"
	cfg.Output.RecoveredDir = "ExtractedImages"
	cfg.Output.RecoveredBase = "extracted_secret"

	cfg.Logging.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate rejects settings no component can honour
func (c *Config) Validate() error {
	if _, err := resample.ParseMethod(c.Processing.Interpolation); err != nil {
		return err
	}
	if c.Processing.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Processing.Workers)
	}
	switch c.Processing.Backend {
	case "", "native", "opencv":
	default:
		return fmt.Errorf("unknown backend %q (want native or opencv)", c.Processing.Backend)
	}
	if c.Output.CarrierDir == "" || c.Output.RecoveredDir == "" {
		return fmt.Errorf("output directories must not be empty")
	}
	if c.Output.CarrierBase == "" || c.Output.RecoveredBase == "" {
		return fmt.Errorf("output base names must not be empty")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ApplyEnv lets LOG_LEVEL and DEBUG=1 override the configured log level
func (c *Config) ApplyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if _, err := logger.ParseLevel(level); err == nil {
			c.Logging.Level = level
		}
		return
	}
	if os.Getenv("DEBUG") == "1" {
		c.Logging.Level = "debug"
	}
}

// InterpolationMethod returns the parsed resampling method
func (c *Config) InterpolationMethod() resample.Method {
	m, err := resample.ParseMethod(c.Processing.Interpolation)
	if err != nil {
		return resample.DefaultMethod
	}
	return m
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() logger.LogLevel {
	level, _ := logger.ParseLevel(c.Logging.Level)
	return level
}

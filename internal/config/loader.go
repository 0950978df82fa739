package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*ReporterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg ReporterConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*ReporterConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*ReporterConfig, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadOrFallback behaves like LoadAndValidate, but on any failure it returns the
// built-in fallback configuration together with the error that caused it.
// The fallback carries placeholder credentials and must not be served in production.
func LoadOrFallback(path string) (*ReporterConfig, error) {
	cfg, err := LoadAndValidate(path)
	if err != nil {
		return Fallback(), err
	}
	return cfg, nil
}

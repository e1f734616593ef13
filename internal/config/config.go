// Package config loads and validates platy tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the platy configuration file.
const ConfigFileName = "platy.yaml"

// Config holds all platy configuration.
type Config struct {
	// Scheme selects the classification policy: "attribute" or
	// "implicit". The two schemes are not interchangeable on the
	// same input, so exactly one is active per run.
	Scheme string `yaml:"scheme"`

	// Input is the Rust compilation unit to extract from.
	Input string `yaml:"input"`

	// CargoToml is the crate manifest consumed by the renderer.
	CargoToml string `yaml:"cargo_toml"`

	Output OutputConfig `yaml:"output"`
}

// OutputConfig holds configuration for generated output.
type OutputConfig struct {
	// Dir is the directory generated files are written under.
	Dir string `yaml:"dir"`
	// Format is the dump serialization format: "yaml" or "json".
	Format string `yaml:"format"`
}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from platy.yaml in workDir, falling back to
// defaults when no file exists.
func Load(workDir string) (*Config, error) {
	path := ConfigFileName
	if workDir != "" {
		path = workDir + string(os.PathSeparator) + ConfigFileName
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path. Merges loaded
// config with defaults and validates the result.
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

// Validate checks config values for correctness.
func Validate(cfg *Config) error {
	switch cfg.Scheme {
	case "attribute", "implicit":
	default:
		return fmt.Errorf("%w: scheme must be attribute or implicit, got %q",
			ErrInvalidConfig, cfg.Scheme)
	}

	switch cfg.Output.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("%w: output.format must be yaml or json, got %q",
			ErrInvalidConfig, cfg.Output.Format)
	}

	if cfg.Input == "" {
		return fmt.Errorf("%w: input must not be empty", ErrInvalidConfig)
	}

	return nil
}

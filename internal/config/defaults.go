package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when the
// config file is missing specific fields. The input paths mirror the
// conventional crate layout of an FFI sub-crate.
func DefaultConfig() *Config {
	return &Config{
		Scheme:    "attribute",
		Input:     "ffi/src/lib.rs",
		CargoToml: "ffi/Cargo.toml",
		Output: OutputConfig{
			Dir:    ".",
			Format: "yaml",
		},
	}
}

// Merge merges loaded config with defaults. Values from the loaded
// config take precedence. Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{
		Scheme:    loaded.Scheme,
		Input:     loaded.Input,
		CargoToml: loaded.CargoToml,
		Output:    loaded.Output,
	}

	if result.Scheme == "" {
		result.Scheme = defaults.Scheme
	}
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.CargoToml == "" {
		result.CargoToml = defaults.CargoToml
	}
	if result.Output.Dir == "" {
		result.Output.Dir = defaults.Output.Dir
	}
	if result.Output.Format == "" {
		result.Output.Format = defaults.Output.Format
	}

	return result
}

package config

// DefaultConfig returns configuration with sensible defaults. These are used
// when no config file exists or when the file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
		},
		Locate: LocateConfig{
			TimeoutSeconds: 10,
		},
		Map: MapConfig{},
		Output: OutputConfig{
			DefaultFormat: "yaml",
		},
	}
}

// Merge merges loaded config with defaults. Values from the loaded config
// take precedence. Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	if loaded.Storage.Backend != "" {
		result.Storage.Backend = loaded.Storage.Backend
	} else {
		result.Storage.Backend = defaults.Storage.Backend
	}

	if loaded.Locate.TimeoutSeconds != 0 {
		result.Locate.TimeoutSeconds = loaded.Locate.TimeoutSeconds
	} else {
		result.Locate.TimeoutSeconds = defaults.Locate.TimeoutSeconds
	}

	// The center override has no default; loaded wins outright
	result.Map = loaded.Map

	if loaded.Output.DefaultFormat != "" {
		result.Output.DefaultFormat = loaded.Output.DefaultFormat
	} else {
		result.Output.DefaultFormat = defaults.Output.DefaultFormat
	}

	return result
}

// ValidBackends lists the valid values for the storage backend
var ValidBackends = []string{"sqlite", "dolt"}

// IsValidBackend checks if the given backend value is valid
func IsValidBackend(backend string) bool {
	for _, valid := range ValidBackends {
		if backend == valid {
			return true
		}
	}
	return false
}

// ValidFormats lists the valid values for the default output format
var ValidFormats = []string{"yaml", "json", "table"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}

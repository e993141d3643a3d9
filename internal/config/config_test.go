package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Locate.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d, want 10", cfg.Locate.TimeoutSeconds)
	}
	if cfg.Output.DefaultFormat != "yaml" {
		t.Errorf("format = %q, want yaml", cfg.Output.DefaultFormat)
	}
	if cfg.Map.DefaultLatitude != nil || cfg.Map.DefaultLongitude != nil {
		t.Error("defaults should carry no center override")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}

func TestLoadMissingConfigReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("backend = %q, want the default", cfg.Storage.Backend)
	}
}

func TestLoadMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ConfigDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	// Only the backend is set; everything else should come from defaults
	content := "storage:\n  backend: dolt\n"
	if err := os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != "dolt" {
		t.Errorf("backend = %q, want dolt", cfg.Storage.Backend)
	}
	if cfg.Locate.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d, want the default 10", cfg.Locate.TimeoutSeconds)
	}
	if cfg.Output.DefaultFormat != "yaml" {
		t.Errorf("format = %q, want the default yaml", cfg.Output.DefaultFormat)
	}
}

func TestLoadWalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ConfigDirName), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	got, err := FindConfigDir(nested)
	if err != nil {
		t.Fatalf("FindConfigDir failed: %v", err)
	}
	want := filepath.Join(root, ConfigDirName)
	if got != want {
		t.Errorf("FindConfigDir = %q, want %q", got, want)
	}
}

func TestFindConfigDirNotFound(t *testing.T) {
	if _, err := FindConfigDir(t.TempDir()); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	lat, lng := 48.85, 2.35
	badLat := 120.0

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"dolt backend", func(c *Config) { c.Storage.Backend = "dolt" }, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"zero timeout", func(c *Config) { c.Locate.TimeoutSeconds = 0 }, true},
		{"negative timeout", func(c *Config) { c.Locate.TimeoutSeconds = -5 }, true},
		{"unknown format", func(c *Config) { c.Output.DefaultFormat = "xml" }, true},
		{"full center override", func(c *Config) {
			c.Map.DefaultLatitude = &lat
			c.Map.DefaultLongitude = &lng
		}, false},
		{"half center override", func(c *Config) { c.Map.DefaultLatitude = &lat }, true},
		{"center out of range", func(c *Config) {
			c.Map.DefaultLatitude = &badLat
			c.Map.DefaultLongitude = &lng
		}, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := Validate(cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: error does not wrap ErrInvalidConfig: %v", tt.name, err)
		}
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ConfigDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	content := "storage:\n  backend: postgres\n"
	if err := os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(dir); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveDefault(dir)
	if err != nil {
		t.Fatalf("SaveDefault failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	// The written file must load back as the defaults
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Locate.TimeoutSeconds != 10 {
		t.Errorf("round trip changed values: %+v", cfg)
	}

	// Saving again must refuse to clobber
	if _, err := SaveDefault(dir); err == nil {
		t.Error("expected error when config already exists")
	}
}

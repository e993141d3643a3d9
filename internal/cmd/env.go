package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sagarsuraksha/hz/internal/config"
	"github.com/sagarsuraksha/hz/internal/geo"
	"github.com/sagarsuraksha/hz/internal/kv"
	"github.com/sagarsuraksha/hz/internal/output"
	"github.com/sagarsuraksha/hz/internal/report"
	"github.com/sagarsuraksha/hz/internal/session"
)

// Env bundles the open store, the session manager, and the effective config
// for one command invocation.
type Env struct {
	Cfg      *config.Config
	KV       kv.Store
	Reports  *report.Store
	Sessions *session.Manager
}

// Close releases the underlying database connection.
func (e *Env) Close() {
	if e.KV != nil {
		e.KV.Close()
	}
}

// openEnv loads config, finds the .hz directory, and opens the configured
// backend. It fails with a pointer to 'hz init' when nothing is initialized.
func openEnv() (*Env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(cwd)
	if err != nil {
		return nil, err
	}

	hzDir, err := config.FindConfigDir(cwd)
	if err != nil {
		return nil, fmt.Errorf("hz not initialized: run 'hz init' first")
	}

	db, err := openBackend(cfg, hzDir)
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	return &Env{
		Cfg:      cfg,
		KV:       db,
		Reports:  report.NewStore(db, logger),
		Sessions: session.NewManager(db, logger),
	}, nil
}

// openBackend opens the kv substrate named by the config.
func openBackend(cfg *config.Config, hzDir string) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "dolt":
		return kv.OpenDolt(hzDir)
	default:
		return kv.OpenSQLite(hzDir)
	}
}

// loadConfig honors --config when given, otherwise searches upward from dir.
func loadConfig(dir string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(dir)
}

// newLogger keeps diagnostics quiet unless --verbose is set.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveFormat picks the output format: flag first, then config default.
func resolveFormat(cfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		return output.ParseFormat(outputFormat)
	}
	return output.ParseFormat(cfg.Output.DefaultFormat)
}

// fallbackCenter returns the configured viewport fallback, or the built-in
// one when the config carries no override.
func fallbackCenter(cfg *config.Config) report.Location {
	if cfg.Map.DefaultLatitude != nil && cfg.Map.DefaultLongitude != nil {
		return report.Location{
			Latitude:  *cfg.Map.DefaultLatitude,
			Longitude: *cfg.Map.DefaultLongitude,
		}
	}
	return geo.DefaultCenter
}

// locateTimeout returns the configured position-acquisition bound.
func locateTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Locate.TimeoutSeconds) * time.Second
}

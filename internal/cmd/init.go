package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sagarsuraksha/hz/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the .hz directory and store",
	Long: `Initialize the .hz directory and report store in the current directory.

This creates the state directory, the configured storage backend (sqlite by
default, dolt when configured), and a config.yaml with defaults if none
exists.

Examples:
  hz init          # Initialize in current directory`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	hzDir, err := config.EnsureConfigDir(cwd)
	if err != nil {
		return err
	}

	// Write a default config the first time through; an existing one is
	// left alone
	if _, err := os.Stat(filepath.Join(hzDir, config.ConfigFileName)); os.IsNotExist(err) {
		if _, err := config.SaveDefault(cwd); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cwd)
	if err != nil {
		return err
	}

	db, err := openBackend(cfg, hzDir)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer db.Close()

	relPath, _ := filepath.Rel(cwd, hzDir)
	fmt.Printf("Initialized %s backend at %s\n", cfg.Storage.Backend, relPath)
	return nil
}

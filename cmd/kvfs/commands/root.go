// Package commands implements the kvfs command line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/kvfs/internal/logger"
	"github.com/marmos91/kvfs/pkg/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kvfs",
	Short: "Virtual filesystem over a flat key-value store",
	Long: `kvfs stores whole files in a flat, transactional key-value store
(BadgerDB, SQLite or memory) and presents them as a directory tree.

Directories are never stored: they are synthesized at query time from the
path prefixes of the stored files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: $XDG_CONFIG_HOME/kvfs/config.yaml)")
}

// loadConfig loads the configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, err
	}

	return cfg, nil
}

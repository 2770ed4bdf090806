// Package commands contains the longform subcommand implementations.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uncharted-distil/longform/internal/cli/config"
	"github.com/uncharted-distil/longform/internal/dataset"
	"github.com/uncharted-distil/longform/internal/format"
	"github.com/uncharted-distil/longform/internal/state"
)

func getConfig(cmd *cobra.Command) *config.Config {
	return config.FromContext(cmd.Context())
}

func getLogger(cmd *cobra.Command) *slog.Logger {
	return config.LoggerFromContext(cmd.Context())
}

// loadDataset validates the config and reads the input dataset.
func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateDirectories(); err != nil {
		return nil, err
	}
	ds, err := dataset.Load(cfg.DatasetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

// newFormatter builds a Formatter from the CLI config.
func newFormatter(cfg *config.Config, logger *slog.Logger) *format.Formatter {
	return format.New(format.Options{
		MainResource: cfg.MainResource,
		FileColIndex: cfg.FileColIndex,
		Parallelism:  cfg.Parallelism,
		Logger:       logger,
	})
}

// openStore opens the run-history store, creating its directory if needed.
func openStore(cfg *config.Config, logger *slog.Logger) (state.Store, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

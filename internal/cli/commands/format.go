package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/uncharted-distil/longform/internal/cli/config"
	"github.com/uncharted-distil/longform/internal/dataset"
	"github.com/uncharted-distil/longform/internal/format"
	"github.com/uncharted-distil/longform/internal/state"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	Watch bool
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Build the long-form table and write the output dataset",
		Long: `Load the input dataset, locate its csv file-reference column, join every
referenced time-series file with its entity row, and write the resulting
long-form table as a new single-resource dataset.`,
		Example: `  # Format a dataset
  longform format --dataset-dir ./mydataset --output-dir ./out

  # Re-run automatically when the dataset changes
  longform format -d ./mydataset --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormat(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run the transform when the dataset directory changes")

	return cmd
}

func runFormat(cmd *cobra.Command, opts *FormatOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	if !opts.Watch {
		return formatOnce(cmd.Context(), cmd, cfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := formatOnce(ctx, cmd, cfg); err != nil {
		// In watch mode a failed run is reported but does not stop the loop;
		// the next change may fix it.
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	return watchAndFormat(ctx, cmd, cfg, logger)
}

// formatOnce runs the transform end to end and records it in the run store.
func formatOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := getLogger(cmd)
	startTime := time.Now()

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	f := newFormatter(cfg, logger)
	disc, err := f.Discover(ds)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.CreateRun(cfg.DatasetDir, disc.MainResource, disc.ColumnIndex)
	if err != nil {
		return err
	}

	out, err := f.Format(ctx, ds)
	if err != nil {
		_ = store.CompleteRun(run.ID, state.RunStatusFailed, 0, 0, err.Error())
		return err
	}

	if err := dataset.Write(out, cfg.OutputDir); err != nil {
		_ = store.CompleteRun(run.ID, state.RunStatusFailed, 0, 0, err.Error())
		return fmt.Errorf("failed to write output dataset: %w", err)
	}

	main, _ := ds.Resource(disc.MainResource)
	long, _ := out.Resource(format.OutputResourceID)
	if err := store.CompleteRun(run.ID, state.RunStatusCompleted,
		int64(main.NumRows()), int64(long.NumRows()), ""); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Formatted %d series into %d rows (%d columns)\n",
		main.NumRows(), long.NumRows(), long.NumColumns())
	fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", cfg.OutputDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return nil
}

// watchAndFormat re-runs the transform whenever the dataset directory
// changes, until the context is cancelled. Events are debounced so a burst
// of writes triggers a single run.
func watchAndFormat(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchDirs(watcher, cfg.DatasetDir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (ctrl-c to stop)\n", cfg.DatasetDir)

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("dataset changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watch error: %v\n", err)
		case <-pending:
			if err := formatOnce(ctx, cmd, cfg); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		}
	}
}

// addWatchDirs registers the dataset root and its subdirectories.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

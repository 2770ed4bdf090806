package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// RunsOptions holds options for the runs command.
type RunsOptions struct {
	Limit int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	opts := &RunsOptions{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent format runs",
		Example: `  longform runs
  longform runs --limit 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

func runRuns(cmd *cobra.Command, opts *RunsOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Dataset", "Series", "Rows", "Status", "Started", "Duration"})

	for _, run := range runs {
		duration := ""
		if run.CompletedAt != nil {
			duration = run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		status := string(run.Status)
		if run.Error != "" {
			status = fmt.Sprintf("%s: %s", status, run.Error)
		}
		t.AppendRow(table.Row{
			run.ID[:8],
			run.DatasetPath,
			run.SeriesCount,
			run.RowCount,
			status,
			run.StartedAt.Format(time.RFC3339),
			duration,
		})
	}

	t.Render()
	return nil
}

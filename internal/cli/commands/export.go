package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uncharted-distil/longform/internal/adapter"
	"github.com/uncharted-distil/longform/internal/dataset"
	"github.com/uncharted-distil/longform/internal/format"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Database string
	Table    string
	Adapter  string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Materialize the long-form table into an analytical database",
		Long: `Run the transform and load the resulting long-form table into a database
table, using the database's own csv reader for schema inference.`,
		Example: `  # Export into a DuckDB file
  longform export -d ./mydataset --database ./series.duckdb

  # Export into a named table
  longform export -d ./mydataset --database ./series.duckdb --table sensor_readings`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "database", "", "Path to the target database (empty for in-memory)")
	cmd.Flags().StringVar(&opts.Table, "table", "timeseries_long", "Name of the table to create")
	cmd.Flags().StringVar(&opts.Adapter, "adapter", "duckdb", "Database adapter type")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)
	ctx := cmd.Context()

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	out, err := newFormatter(cfg, logger).Format(ctx, ds)
	if err != nil {
		return err
	}

	// The adapter ingests from disk, so stage the output table as csv.
	stageDir, err := os.MkdirTemp("", "longform-export-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	if err := dataset.Write(out, stageDir); err != nil {
		return fmt.Errorf("failed to stage output dataset: %w", err)
	}
	csvPath := filepath.Join(stageDir, "tables", format.OutputResourceID+".csv")

	db, err := adapter.NewAdapter(adapter.Config{Type: opts.Adapter, Path: opts.Database})
	if err != nil {
		return err
	}
	if err := db.Connect(ctx, adapter.Config{Type: opts.Adapter, Path: opts.Database}); err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.LoadCSV(ctx, opts.Table, csvPath); err != nil {
		return err
	}

	meta, err := db.GetTableMetadata(ctx, opts.Table)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows (%d columns) into table %s\n",
		meta.RowCount, len(meta.Columns), opts.Table)

	return nil
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Report the detected file-reference column and base path",
		Long: `Run column discovery against the main resource and print the column the
formatter would use, together with the base path its file names resolve
against. Nothing is loaded or written.`,
		Example: `  longform discover -d ./mydataset
  longform discover -d ./mydataset -o json`,
		RunE: runDiscover,
	}
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	disc, err := newFormatter(cfg, logger).Discover(ds)
	if err != nil {
		return err
	}

	if cfg.OutputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"mainResource": disc.MainResource,
			"columnIndex":  disc.ColumnIndex,
			"columnName":   disc.ColumnName,
			"basePath":     disc.BasePath,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Main resource:  %s\n", disc.MainResource)
	fmt.Fprintf(cmd.OutOrStdout(), "File column:    %d (%s)\n", disc.ColumnIndex, disc.ColumnName)
	fmt.Fprintf(cmd.OutOrStdout(), "Base path:      %s\n", disc.BasePath)

	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uncharted-distil/longform/internal/format"
)

// PreviewOptions holds options for the preview command.
type PreviewOptions struct {
	Limit int
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the first rows of the long-form table",
		Long: `Run the transform in memory and render the head of the long-form table
without writing an output dataset.`,
		Example: `  longform preview -d ./mydataset
  longform preview -d ./mydataset --limit 25 -o markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Maximum number of rows to render")

	return cmd
}

func runPreview(cmd *cobra.Command, opts *PreviewOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	out, err := newFormatter(cfg, logger).Format(cmd.Context(), ds)
	if err != nil {
		return err
	}

	long, ok := out.Resource(format.OutputResourceID)
	if !ok {
		return fmt.Errorf("output dataset has no %s resource", format.OutputResourceID)
	}

	return renderResource(cmd.OutOrStdout(), long, cfg.OutputFormat, opts.Limit)
}

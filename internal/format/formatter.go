// Package format implements the time-series long-form transform: it locates
// the csv file-reference column of a dataset's main resource using column
// metadata, resolves the base path its file names live under, and joins each
// referenced time-series file with its entity row into one long-form table.
package format

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uncharted-distil/longform/internal/dataset"
)

// DefaultMainResource is the resource assumed to hold the entity rows when
// none is configured.
const DefaultMainResource = "learningData"

// OutputResourceID is the fixed identifier of the single resource in the
// output dataset.
const OutputResourceID = "learningData"

// Options configures a Formatter.
type Options struct {
	// MainResource is the ID of the resource containing the entity rows.
	// Defaults to DefaultMainResource.
	MainResource string

	// FileColIndex is the explicit index of the file-reference column.
	// Negative means discover it from the metadata.
	FileColIndex int

	// Parallelism bounds concurrent series file loads. Values below 2 load
	// sequentially. Output row order is identical either way.
	Parallelism int

	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Formatter reshapes a dataset's per-entity time-series files into a single
// long-form resource.
type Formatter struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Formatter with defaults applied.
func New(opts Options) *Formatter {
	if opts.MainResource == "" {
		opts.MainResource = DefaultMainResource
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Formatter{opts: opts, logger: logger}
}

// Discovery describes the file-reference column the formatter will use and
// the base path its file names resolve against.
type Discovery struct {
	MainResource string
	ColumnIndex  int
	ColumnName   string
	BasePath     string
}

// Discover resolves the file-reference column and base path without running
// the join. The same resolution happens at the start of Format.
func (f *Formatter) Discover(ds *dataset.Dataset) (*Discovery, error) {
	main, ok := ds.Resource(f.opts.MainResource)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, f.opts.MainResource)
	}

	fileCol := f.opts.FileColIndex
	if fileCol >= 0 {
		if !IsFileReferenceColumn(ds.Metadata(), main.ID, fileCol) {
			return nil, fmt.Errorf("%w: column idx=%d of resource %s", ErrNotFileColumn, fileCol, main.ID)
		}
	} else {
		fileCol = FindFileColumn(ds.Metadata(), main.ID)
		if fileCol < 0 {
			return nil, fmt.Errorf("%w: resource %s", ErrNoFileColumn, main.ID)
		}
	}

	basePath, err := ResolveBasePath(ds, main.ID, fileCol)
	if err != nil {
		return nil, err
	}

	name := ""
	if fileCol < len(main.Columns) {
		name = main.Columns[fileCol]
	}

	return &Discovery{
		MainResource: main.ID,
		ColumnIndex:  fileCol,
		ColumnName:   name,
		BasePath:     basePath,
	}, nil
}

// Format runs the transform and returns a new single-resource dataset
// holding the long-form table, with metadata regenerated from the table's
// own structure. The input dataset is not modified. Column-name collisions
// between the main resource and the series files are the caller's
// responsibility; they are not detected here.
func (f *Formatter) Format(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	disc, err := f.Discover(ds)
	if err != nil {
		return nil, err
	}

	main, _ := ds.Resource(disc.MainResource)

	f.logger.Debug("formatting time series",
		slog.String("main_resource", disc.MainResource),
		slog.Int("file_column", disc.ColumnIndex),
		slog.String("base_path", disc.BasePath),
		slog.Int("entities", main.NumRows()))

	long, err := f.buildLongForm(ctx, main, disc.ColumnIndex, disc.BasePath)
	if err != nil {
		return nil, err
	}

	out := dataset.New(ds.ID + "_formatted")
	out.Name = ds.Name
	out.AddResource(long, dataset.GenerateColumns(long))

	return out, nil
}

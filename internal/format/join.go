package format

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/uncharted-distil/longform/internal/dataset"
)

// SeriesIDColumn is the provenance column injected into every long-form
// row: its value is the zero-based position of the originating main-resource
// row.
const SeriesIDColumn = "series_id"

// seriesTable is one loaded time-series file.
type seriesTable struct {
	columns []string
	rows    [][]string
}

// buildLongForm expands the main resource into the long-form table: for
// each entity row, the referenced csv is loaded and every one of its rows
// is emitted as entity fields + series_id + series fields. Output order is
// main-resource row order, then source file row order within a series; the
// order is an invariant, not an accident. A single failed load aborts the
// whole join.
func (f *Formatter) buildLongForm(ctx context.Context, main *dataset.Resource, fileCol int, basePath string) (*dataset.Resource, error) {
	tables, err := f.loadSeries(ctx, main, fileCol, basePath)
	if err != nil {
		return nil, err
	}

	out := &dataset.Resource{ID: OutputResourceID}
	out.Columns = append(out.Columns, main.Columns...)
	out.Columns = append(out.Columns, SeriesIDColumn)
	if len(tables) > 0 {
		// All series files share one timestamp grid, so the first file's
		// header stands in for every file's.
		out.Columns = append(out.Columns, tables[0].columns...)
	}

	total := 0
	for _, t := range tables {
		total += len(t.rows)
	}
	out.Rows = make([][]string, 0, total)

	for i, entityRow := range main.Rows {
		seriesID := strconv.Itoa(i)
		for _, seriesRow := range tables[i].rows {
			row := make([]string, 0, len(out.Columns))
			row = append(row, entityRow...)
			row = append(row, seriesID)
			row = append(row, seriesRow...)
			out.Rows = append(out.Rows, row)
		}
	}

	f.logger.Debug("long-form table built",
		slog.Int("series", len(main.Rows)),
		slog.Int("rows", len(out.Rows)),
		slog.Int("columns", len(out.Columns)))

	return out, nil
}

// loadSeries reads the csv referenced by each main-resource row. Loads may
// run concurrently up to the configured parallelism, but results land in
// per-index slots so the caller sees them in main-resource row order.
func (f *Formatter) loadSeries(ctx context.Context, main *dataset.Resource, fileCol int, basePath string) ([]*seriesTable, error) {
	tables := make([]*seriesTable, len(main.Rows))

	if f.opts.Parallelism <= 1 {
		for i, row := range main.Rows {
			t, err := loadSeriesFile(filepath.Join(basePath, row[fileCol]))
			if err != nil {
				return nil, err
			}
			tables[i] = t
		}
		return tables, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Parallelism)
	for i, row := range main.Rows {
		path := filepath.Join(basePath, row[fileCol])
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := loadSeriesFile(path)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func loadSeriesFile(path string) (*seriesTable, error) {
	header, rows, err := dataset.ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load series file: %w", err)
	}
	return &seriesTable{columns: header, rows: rows}, nil
}

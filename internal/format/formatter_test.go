package format

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncharted-distil/longform/internal/dataset"
	"github.com/uncharted-distil/longform/internal/testutil"
)

// writeSeriesFile writes a csv with a time column and a value column
// holding n rows of the given label.
func writeSeriesFile(t *testing.T, dir, name string, n int, label string) {
	t.Helper()
	content := "time,value\n"
	for i := 0; i < n; i++ {
		content += fmt.Sprintf("%d,%s-%d\n", i, label, i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// newSeriesDataset builds an in-memory dataset whose main resource has one
// entity row per given file name, with the metadata wiring the transform
// expects: a file-name column with a foreign key into a collection column
// carrying the csv tags and the base location.
func newSeriesDataset(baseDir string, files ...string) *dataset.Dataset {
	ds := dataset.New("test_dataset")

	ds.AddResource(&dataset.Resource{
		ID:      "timeseries",
		Columns: []string{"filename"},
	}, []dataset.ColumnMetadata{
		{
			Name:             "filename",
			StructuralType:   dataset.StructuralTypeString,
			SemanticTypes:    []string{dataset.SemanticTypeFileName, dataset.SemanticTypeTimeSeries},
			MediaTypes:       []string{dataset.MediaTypeCSV},
			LocationBaseURIs: []string{baseDir},
		},
	})

	main := &dataset.Resource{
		ID:      "learningData",
		Columns: []string{"series_file", "label"},
	}
	for i, f := range files {
		main.Rows = append(main.Rows, []string{f, "entity" + strconv.Itoa(i)})
	}
	ds.AddResource(main, []dataset.ColumnMetadata{
		{
			Name:           "series_file",
			StructuralType: dataset.StructuralTypeString,
			SemanticTypes:  []string{dataset.SemanticTypeFileName},
			ForeignKey:     &dataset.ForeignKey{ResourceID: "timeseries", ColumnIndex: 0},
		},
		{
			Name:           "label",
			StructuralType: dataset.StructuralTypeString,
			SemanticTypes:  []string{dataset.SemanticTypeAttribute},
		},
	})

	return ds
}

func TestFormat_TwoSeries(t *testing.T) {
	dir := t.TempDir()
	writeSeriesFile(t, dir, "a.csv", 3, "a")
	writeSeriesFile(t, dir, "b.csv", 3, "b")

	ds := newSeriesDataset(dir, "a.csv", "b.csv")
	f := New(Options{FileColIndex: -1, Logger: testutil.NewTestLogger(t)})

	out, err := f.Format(context.Background(), ds)
	require.NoError(t, err)

	long, ok := out.Resource(OutputResourceID)
	require.True(t, ok, "output should hold the %s resource", OutputResourceID)

	assert.Equal(t, []string{"series_file", "label", SeriesIDColumn, "time", "value"}, long.Columns)
	require.Len(t, long.Rows, 6)

	// Rows 0-2 come from a.csv with series_id=0, rows 3-5 from b.csv with
	// series_id=1, each preserving the source file's row order.
	for i, row := range long.Rows {
		wantSeries := i / 3
		wantStep := i % 3
		wantLabel := []string{"a", "b"}[wantSeries]
		assert.Equal(t, strconv.Itoa(wantSeries), row[2], "row %d series_id", i)
		assert.Equal(t, strconv.Itoa(wantStep), row[3], "row %d time", i)
		assert.Equal(t, fmt.Sprintf("%s-%d", wantLabel, wantStep), row[4], "row %d value", i)
		assert.Equal(t, wantLabel+".csv", row[0], "row %d file name", i)
		assert.Equal(t, "entity"+strconv.Itoa(wantSeries), row[1], "row %d label", i)
	}
}

func TestFormat_RowCountLaw(t *testing.T) {
	dir := t.TempDir()
	writeSeriesFile(t, dir, "a.csv", 2, "a")
	writeSeriesFile(t, dir, "b.csv", 5, "b")
	writeSeriesFile(t, dir, "c.csv", 1, "c")

	ds := newSeriesDataset(dir, "a.csv", "b.csv", "c.csv")
	out, err := New(Options{FileColIndex: -1}).Format(context.Background(), ds)
	require.NoError(t, err)

	long, _ := out.Resource(OutputResourceID)
	assert.Equal(t, 2+5+1, long.NumRows())
}

func TestFormat_GroupingAndProvenance(t *testing.T) {
	dir := t.TempDir()
	writeSeriesFile(t, dir, "a.csv", 4, "a")
	writeSeriesFile(t, dir, "b.csv", 4, "b")
	writeSeriesFile(t, dir, "c.csv", 4, "c")

	ds := newSeriesDataset(dir, "a.csv", "b.csv", "c.csv")
	out, err := New(Options{FileColIndex: -1}).Format(context.Background(), ds)
	require.NoError(t, err)

	long, _ := out.Resource(OutputResourceID)

	// series_id values must form contiguous non-decreasing blocks in
	// main-resource row order.
	prev := -1
	seen := make(map[string]bool)
	for i, row := range long.Rows {
		id, err := strconv.Atoi(row[2])
		require.NoError(t, err, "row %d series_id should be an integer", i)
		if id != prev {
			assert.False(t, seen[row[2]], "series_id %s must be contiguous", row[2])
			assert.Equal(t, prev+1, id, "blocks must appear in main-resource order")
			seen[row[2]] = true
			prev = id
		}
	}
	assert.Len(t, seen, 3)
}

func TestFormat_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 8; i++ {
		writeSeriesFile(t, dir, fmt.Sprintf("s%d.csv", i), 3, fmt.Sprintf("s%d", i))
	}
	files := make([]string, 8)
	for i := range files {
		files[i] = fmt.Sprintf("s%d.csv", i)
	}

	seq, err := New(Options{FileColIndex: -1, Parallelism: 1}).Format(context.Background(), newSeriesDataset(dir, files...))
	require.NoError(t, err)
	par, err := New(Options{FileColIndex: -1, Parallelism: 4}).Format(context.Background(), newSeriesDataset(dir, files...))
	require.NoError(t, err)

	seqLong, _ := seq.Resource(OutputResourceID)
	parLong, _ := par.Resource(OutputResourceID)
	assert.Equal(t, seqLong.Columns, parLong.Columns)
	assert.Equal(t, seqLong.Rows, parLong.Rows, "parallel loading must not change row order")
}

func TestFormat_MissingSeriesFile(t *testing.T) {
	dir := t.TempDir()
	writeSeriesFile(t, dir, "a.csv", 3, "a")

	ds := newSeriesDataset(dir, "a.csv", "missing.csv")
	out, err := New(Options{FileColIndex: -1}).Format(context.Background(), ds)

	require.Error(t, err)
	assert.Nil(t, out, "a failed load must not produce partial output")
}

func TestFormat_ExplicitColumnNotFileReference(t *testing.T) {
	dir := t.TempDir()
	writeSeriesFile(t, dir, "a.csv", 3, "a")

	ds := newSeriesDataset(dir, "a.csv")
	// Column 1 is the plain label column with no foreign key.
	out, err := New(Options{FileColIndex: 1}).Format(context.Background(), ds)

	require.ErrorIs(t, err, ErrNotFileColumn)
	assert.Nil(t, out)
}

func TestFormat_MainResourceMissing(t *testing.T) {
	ds := dataset.New("empty")
	_, err := New(Options{MainResource: "learningData", FileColIndex: -1}).Format(context.Background(), ds)
	require.ErrorIs(t, err, ErrResourceNotFound)
}

func TestFormat_NoQualifyingColumn(t *testing.T) {
	ds := dataset.New("plain")
	ds.AddResource(&dataset.Resource{
		ID:      "learningData",
		Columns: []string{"label"},
		Rows:    [][]string{{"x"}},
	}, []dataset.ColumnMetadata{
		{
			Name:           "label",
			StructuralType: dataset.StructuralTypeString,
			SemanticTypes:  []string{dataset.SemanticTypeAttribute},
		},
	})

	_, err := New(Options{FileColIndex: -1}).Format(context.Background(), ds)
	require.ErrorIs(t, err, ErrNoFileColumn)
}

func TestFormat_OutputMetadataRegenerated(t *testing.T) {
	dir := t.TempDir()
	writeSeriesFile(t, dir, "a.csv", 2, "a")

	ds := newSeriesDataset(dir, "a.csv")
	out, err := New(Options{FileColIndex: -1}).Format(context.Background(), ds)
	require.NoError(t, err)

	cols := out.Metadata().Columns(OutputResourceID)
	require.Len(t, cols, 5)
	// series_id and time hold integers; labels and values are strings.
	assert.Equal(t, dataset.StructuralTypeInteger, cols[2].StructuralType)
	assert.Equal(t, dataset.StructuralTypeInteger, cols[3].StructuralType)
	assert.Equal(t, dataset.StructuralTypeString, cols[4].StructuralType)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	ds := newSeriesDataset(dir, "a.csv")

	disc, err := New(Options{FileColIndex: -1}).Discover(ds)
	require.NoError(t, err)

	assert.Equal(t, "learningData", disc.MainResource)
	assert.Equal(t, 0, disc.ColumnIndex)
	assert.Equal(t, "series_file", disc.ColumnName)
	assert.Equal(t, dir, disc.BasePath)
}

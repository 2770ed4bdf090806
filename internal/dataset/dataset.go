// Package dataset provides the in-memory model for multi-resource tabular
// datasets: named resources holding two-dimensional tables, plus a typed
// column-level metadata store describing structural types, semantic tags,
// media tags, foreign keys, and file base locations.
package dataset

import (
	"path/filepath"
	"strings"
)

// Resource is one named table within a dataset. Values are kept as strings;
// structural types live in the metadata store, not in the table itself.
type Resource struct {
	ID      string
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows in the resource.
func (r *Resource) NumRows() int {
	return len(r.Rows)
}

// NumColumns returns the number of columns in the resource.
func (r *Resource) NumColumns() int {
	return len(r.Columns)
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (r *Resource) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Dataset is an ordered collection of named resources plus their metadata.
// Datasets are treated as immutable inputs: transforms construct a new
// Dataset rather than mutating one in place.
type Dataset struct {
	ID   string
	Name string

	root      string
	order     []string
	resources map[string]*Resource
	meta      *Metadata
}

// New creates an empty dataset with the given identifier.
func New(id string) *Dataset {
	return &Dataset{
		ID:        id,
		resources: make(map[string]*Resource),
		meta:      NewMetadata(),
	}
}

// AddResource appends a resource and its column metadata to the dataset.
// A resource with the same ID replaces the previous one in place.
func (d *Dataset) AddResource(res *Resource, columns []ColumnMetadata) {
	if _, exists := d.resources[res.ID]; !exists {
		d.order = append(d.order, res.ID)
	}
	d.resources[res.ID] = res
	d.meta.SetColumns(res.ID, columns)
}

// Resource returns the resource with the given ID.
func (d *Dataset) Resource(id string) (*Resource, bool) {
	res, ok := d.resources[id]
	return res, ok
}

// Resources returns all resources in insertion order.
func (d *Dataset) Resources() []*Resource {
	out := make([]*Resource, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.resources[id])
	}
	return out
}

// Metadata returns the dataset's column metadata store.
func (d *Dataset) Metadata() *Metadata {
	return d.meta
}

// Root returns the dataset's directory on disk, or "" for an in-memory dataset.
func (d *Dataset) Root() string {
	return d.root
}

// ResolveBaseURI turns a declared base-location URI into a filesystem path.
// file:// URIs are stripped to plain paths; relative URIs resolve against
// the dataset root.
func (d *Dataset) ResolveBaseURI(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	if filepath.IsAbs(path) || d.root == "" {
		return path
	}
	return filepath.Join(d.root, path)
}

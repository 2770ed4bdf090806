package dataset

import (
	"strconv"
)

// Structural types describe how a column's values parse.
const (
	StructuralTypeString  = "string"
	StructuralTypeInteger = "integer"
	StructuralTypeReal    = "real"
)

// Semantic types describe what a column means.
const (
	SemanticTypeFileName   = "fileName"
	SemanticTypeTimeSeries = "timeseries"
	SemanticTypeText       = "text"
	SemanticTypeAttribute  = "attribute"
	SemanticTypeIndex      = "index"
)

// MediaTypeCSV marks a column whose referenced files are csv tables.
const MediaTypeCSV = "text/csv"

// ForeignKey declares that a column references another resource's column.
type ForeignKey struct {
	ResourceID  string
	ColumnIndex int
}

// ColumnMetadata is the per-column annotation record. LocationBaseURIs is
// only meaningful on a referenced collection column: it gives the root under
// which that column's file names are stored.
type ColumnMetadata struct {
	Name             string
	StructuralType   string
	SemanticTypes    []string
	MediaTypes       []string
	ForeignKey       *ForeignKey
	LocationBaseURIs []string
}

// IsTextual reports whether the column's structural type is string.
func (c ColumnMetadata) IsTextual() bool {
	return c.StructuralType == StructuralTypeString
}

// HasSemanticType reports whether the column carries the given semantic tag.
func (c ColumnMetadata) HasSemanticType(t string) bool {
	for _, s := range c.SemanticTypes {
		if s == t {
			return true
		}
	}
	return false
}

// HasAnySemanticType reports whether the column's semantic tag set
// intersects the given set.
func (c ColumnMetadata) HasAnySemanticType(types ...string) bool {
	for _, t := range types {
		if c.HasSemanticType(t) {
			return true
		}
	}
	return false
}

// HasAllMediaTypes reports whether the column's media tag set is a superset
// of the given set.
func (c ColumnMetadata) HasAllMediaTypes(types ...string) bool {
	for _, want := range types {
		found := false
		for _, m := range c.MediaTypes {
			if m == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Metadata is the dataset-wide schema store, keyed by resource ID and
// column index.
type Metadata struct {
	columns map[string][]ColumnMetadata
}

// NewMetadata creates an empty metadata store.
func NewMetadata() *Metadata {
	return &Metadata{columns: make(map[string][]ColumnMetadata)}
}

// SetColumns replaces the column records for a resource.
func (m *Metadata) SetColumns(resID string, cols []ColumnMetadata) {
	m.columns[resID] = cols
}

// Query returns the metadata record for one column.
func (m *Metadata) Query(resID string, col int) (ColumnMetadata, bool) {
	cols, ok := m.columns[resID]
	if !ok || col < 0 || col >= len(cols) {
		return ColumnMetadata{}, false
	}
	return cols[col], true
}

// Columns returns all column records for a resource, in column order.
func (m *Metadata) Columns(resID string) []ColumnMetadata {
	return m.columns[resID]
}

// ListColumnsWithSemanticTypes returns the indices of all columns at resID
// whose semantic tag set intersects the given set, in column order.
func (m *Metadata) ListColumnsWithSemanticTypes(resID string, types []string) []int {
	var out []int
	for i, c := range m.columns[resID] {
		if c.HasAnySemanticType(types...) {
			out = append(out, i)
		}
	}
	return out
}

// GenerateColumns derives column metadata from a table's own structure:
// structural types are inferred from the values, every column is tagged as
// an attribute. Used when assembling an output dataset, where annotations
// are regenerated rather than inherited from the input.
func GenerateColumns(res *Resource) []ColumnMetadata {
	cols := make([]ColumnMetadata, len(res.Columns))
	for i, name := range res.Columns {
		cols[i] = ColumnMetadata{
			Name:           name,
			StructuralType: inferStructuralType(res.Rows, i),
			SemanticTypes:  []string{SemanticTypeAttribute},
		}
	}
	return cols
}

// inferStructuralType scans one column's values and returns the narrowest
// structural type that parses every value. An empty column is a string.
func inferStructuralType(rows [][]string, col int) string {
	if len(rows) == 0 {
		return StructuralTypeString
	}
	allInt, allReal := true, true
	for _, row := range rows {
		if col >= len(row) {
			return StructuralTypeString
		}
		v := row[col]
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allReal {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allReal = false
			}
		}
		if !allInt && !allReal {
			return StructuralTypeString
		}
	}
	if allInt {
		return StructuralTypeInteger
	}
	return StructuralTypeReal
}

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_Query(t *testing.T) {
	meta := NewMetadata()
	meta.SetColumns("learningData", []ColumnMetadata{
		{Name: "a", StructuralType: StructuralTypeString},
		{Name: "b", StructuralType: StructuralTypeInteger},
	})

	cm, ok := meta.Query("learningData", 1)
	assert.True(t, ok)
	assert.Equal(t, "b", cm.Name)

	_, ok = meta.Query("learningData", 2)
	assert.False(t, ok, "out-of-range column")

	_, ok = meta.Query("learningData", -1)
	assert.False(t, ok, "negative column")

	_, ok = meta.Query("unknown", 0)
	assert.False(t, ok, "unknown resource")
}

func TestMetadata_ListColumnsWithSemanticTypes(t *testing.T) {
	meta := NewMetadata()
	meta.SetColumns("learningData", []ColumnMetadata{
		{Name: "idx", SemanticTypes: []string{SemanticTypeIndex}},
		{Name: "file", SemanticTypes: []string{SemanticTypeFileName, SemanticTypeAttribute}},
		{Name: "note", SemanticTypes: []string{SemanticTypeText}},
		{Name: "blob", SemanticTypes: nil},
	})

	got := meta.ListColumnsWithSemanticTypes("learningData", []string{SemanticTypeFileName, SemanticTypeText})
	assert.Equal(t, []int{1, 2}, got)

	assert.Nil(t, meta.ListColumnsWithSemanticTypes("learningData", []string{"unknown"}))
}

func TestColumnMetadata_HasAllMediaTypes(t *testing.T) {
	cm := ColumnMetadata{MediaTypes: []string{MediaTypeCSV, "image/png"}}

	assert.True(t, cm.HasAllMediaTypes(MediaTypeCSV))
	assert.True(t, cm.HasAllMediaTypes())
	assert.False(t, cm.HasAllMediaTypes(MediaTypeCSV, "audio/wav"))
}

func TestGenerateColumns(t *testing.T) {
	res := &Resource{
		ID:      "out",
		Columns: []string{"id", "value", "label"},
		Rows: [][]string{
			{"0", "1.5", "cat"},
			{"1", "2", "dog"},
		},
	}

	cols := GenerateColumns(res)
	assert.Equal(t, StructuralTypeInteger, cols[0].StructuralType)
	assert.Equal(t, StructuralTypeReal, cols[1].StructuralType)
	assert.Equal(t, StructuralTypeString, cols[2].StructuralType)
	for _, c := range cols {
		assert.Equal(t, []string{SemanticTypeAttribute}, c.SemanticTypes)
	}
}

func TestGenerateColumns_EmptyTable(t *testing.T) {
	res := &Resource{ID: "out", Columns: []string{"a"}}
	cols := GenerateColumns(res)
	assert.Equal(t, StructuralTypeString, cols[0].StructuralType)
}

package format

import (
	"github.com/uncharted-distil/longform/internal/dataset"
)

// requiredSemanticTypes is the tag set a foreign-key target must intersect
// for its pointer column to count as a csv file reference.
var requiredSemanticTypes = []string{
	dataset.SemanticTypeFileName,
	dataset.SemanticTypeTimeSeries,
	dataset.SemanticTypeText,
	dataset.SemanticTypeAttribute,
}

// requiredMediaTypes is the tag set the target's media types must cover.
var requiredMediaTypes = []string{dataset.MediaTypeCSV}

// IsFileReferenceColumn reports whether the column at (resID, col) holds
// names of csv time-series files. The tags describing the files live on the
// foreign-key target column, not on the pointer column itself, so the check
// is two-hop: pointer column -> its foreign key -> target's semantic and
// media tags. Every missing precondition fails closed.
func IsFileReferenceColumn(meta *dataset.Metadata, resID string, col int) bool {
	cm, ok := meta.Query(resID, col)
	if !ok || !cm.IsTextual() {
		return false
	}
	if cm.ForeignKey == nil {
		return false
	}

	ref, ok := meta.Query(cm.ForeignKey.ResourceID, cm.ForeignKey.ColumnIndex)
	if !ok || !ref.IsTextual() {
		return false
	}

	return ref.HasAnySemanticType(requiredSemanticTypes...) &&
		ref.HasAllMediaTypes(requiredMediaTypes...)
}

// FindFileColumn scans the resource's columns carrying any of the required
// semantic tags and returns the index of the first one that passes
// IsFileReferenceColumn, or -1 if none qualifies. First match wins; the
// tie-break is deliberate and callers rely on it.
func FindFileColumn(meta *dataset.Metadata, resID string) int {
	for _, i := range meta.ListColumnsWithSemanticTypes(resID, requiredSemanticTypes) {
		if IsFileReferenceColumn(meta, resID, i) {
			return i
		}
	}
	return -1
}

package format

import (
	"fmt"

	"github.com/uncharted-distil/longform/internal/dataset"
)

// ResolveBasePath follows the file-reference column's foreign key and
// returns the filesystem path of the target column's first declared base
// location. A missing foreign key or an empty base-location list is a
// configuration defect in the input dataset, not a runtime condition.
func ResolveBasePath(ds *dataset.Dataset, resID string, col int) (string, error) {
	meta := ds.Metadata()

	cm, ok := meta.Query(resID, col)
	if !ok {
		return "", fmt.Errorf("no metadata for column %d of resource %s", col, resID)
	}
	if cm.ForeignKey == nil {
		return "", fmt.Errorf("%w: column %d of resource %s", ErrNoForeignKey, col, resID)
	}

	ref, ok := meta.Query(cm.ForeignKey.ResourceID, cm.ForeignKey.ColumnIndex)
	if !ok || len(ref.LocationBaseURIs) == 0 {
		return "", fmt.Errorf("%w: column %d of resource %s",
			ErrNoBaseLocation, cm.ForeignKey.ColumnIndex, cm.ForeignKey.ResourceID)
	}

	return ds.ResolveBaseURI(ref.LocationBaseURIs[0]), nil
}

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// tablesDir is where table resource csvs are written inside a dataset dir.
const tablesDir = "tables"

// Write persists a dataset to a directory: one csv per table resource under
// tables/, plus the descriptor at the root. The directory is created if
// needed.
func Write(ds *Dataset, dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, tablesDir), 0750); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	doc := datasetDoc{
		About: aboutDoc{DatasetID: ds.ID, DatasetName: ds.Name},
	}

	for _, res := range ds.Resources() {
		relPath := filepath.Join(tablesDir, res.ID+".csv")
		if err := writeTable(filepath.Join(dir, relPath), res); err != nil {
			return err
		}

		rd := resourceDoc{
			ResID:   res.ID,
			ResPath: relPath,
			ResType: ResTypeTable,
		}
		for i, cm := range ds.Metadata().Columns(res.ID) {
			cd := columnDoc{
				ColIndex:         i,
				ColName:          cm.Name,
				ColType:          cm.StructuralType,
				SemanticTypes:    cm.SemanticTypes,
				MediaTypes:       cm.MediaTypes,
				LocationBaseURIs: cm.LocationBaseURIs,
			}
			if cm.ForeignKey != nil {
				cd.RefersTo = &refDoc{
					ResID:    cm.ForeignKey.ResourceID,
					ColIndex: cm.ForeignKey.ColumnIndex,
				}
			}
			rd.Columns = append(rd.Columns, cd)
		}
		doc.Resources = append(doc.Resources, rd)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset descriptor: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, DocFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset descriptor: %w", err)
	}

	return nil
}

func writeTable(path string, res *Resource) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(res.Columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write header for %s: %w", res.ID, err)
	}
	for _, row := range res.Rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write row for %s: %w", res.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush %s: %w", res.ID, err)
	}
	return f.Close()
}

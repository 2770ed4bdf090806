package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DocFileName is the descriptor file expected at a dataset's root.
const DocFileName = "datasetDoc.json"

// Resource types used in the descriptor.
const (
	ResTypeTable      = "table"
	ResTypeCollection = "collection"
)

// datasetDoc mirrors the on-disk descriptor layout.
type datasetDoc struct {
	About     aboutDoc      `json:"about"`
	Resources []resourceDoc `json:"dataResources"`
}

type aboutDoc struct {
	DatasetID   string `json:"datasetID"`
	DatasetName string `json:"datasetName,omitempty"`
}

type resourceDoc struct {
	ResID   string      `json:"resID"`
	ResPath string      `json:"resPath"`
	ResType string      `json:"resType"`
	Columns []columnDoc `json:"columns"`
}

type columnDoc struct {
	ColIndex         int      `json:"colIndex"`
	ColName          string   `json:"colName"`
	ColType          string   `json:"colType"`
	SemanticTypes    []string `json:"semanticTypes,omitempty"`
	MediaTypes       []string `json:"mediaTypes,omitempty"`
	RefersTo         *refDoc  `json:"refersTo,omitempty"`
	LocationBaseURIs []string `json:"locationBaseUris,omitempty"`
}

type refDoc struct {
	ResID    string `json:"resID"`
	ColIndex int    `json:"colIndex"`
}

// Load reads a dataset directory: the descriptor plus the csv file of every
// table-type resource. Collection-type resources carry annotations only;
// their files are loaded lazily by consumers using the declared base URIs.
func Load(dir string) (*Dataset, error) {
	docPath := filepath.Join(dir, DocFileName)
	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset descriptor: %w", err)
	}

	var doc datasetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset descriptor %s: %w", docPath, err)
	}

	ds := New(doc.About.DatasetID)
	ds.Name = doc.About.DatasetName
	ds.root = dir

	for _, rd := range doc.Resources {
		res := &Resource{ID: rd.ResID}
		cols := make([]ColumnMetadata, len(rd.Columns))
		names := make([]string, len(rd.Columns))
		for i, cd := range rd.Columns {
			names[i] = cd.ColName
			cols[i] = ColumnMetadata{
				Name:             cd.ColName,
				StructuralType:   cd.ColType,
				SemanticTypes:    cd.SemanticTypes,
				MediaTypes:       cd.MediaTypes,
				LocationBaseURIs: cd.LocationBaseURIs,
			}
			if cd.RefersTo != nil {
				cols[i].ForeignKey = &ForeignKey{
					ResourceID:  cd.RefersTo.ResID,
					ColumnIndex: cd.RefersTo.ColIndex,
				}
			}
		}

		switch rd.ResType {
		case ResTypeTable:
			header, rows, err := ReadTable(filepath.Join(dir, rd.ResPath))
			if err != nil {
				return nil, fmt.Errorf("failed to load resource %s: %w", rd.ResID, err)
			}
			res.Columns = header
			res.Rows = rows
			// Descriptor column names win over the csv header when both exist.
			if len(names) == len(header) {
				res.Columns = names
			}
		case ResTypeCollection:
			res.Columns = names
		default:
			return nil, fmt.Errorf("resource %s has unknown type %q", rd.ResID, rd.ResType)
		}

		ds.AddResource(res, cols)
	}

	return ds, nil
}

// ReadTable reads a comma-delimited file with a header row into a header
// slice and data rows.
func ReadTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s has no header row", path)
	}
	return records[0], records[1:], nil
}

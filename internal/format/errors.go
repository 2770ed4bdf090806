package format

import "errors"

// Configuration errors. All of them mean the input dataset or the supplied
// options are wrong for this transform; none is recoverable within a run.
var (
	// ErrResourceNotFound is returned when the configured main resource is
	// not present in the dataset.
	ErrResourceNotFound = errors.New("main resource not found")

	// ErrNotFileColumn is returned when an explicitly configured column
	// fails the file-reference check.
	ErrNotFileColumn = errors.New("column does not contain csv file names")

	// ErrNoFileColumn is returned when discovery finds no qualifying
	// file-reference column.
	ErrNoFileColumn = errors.New("no column contains csv file names")

	// ErrNoForeignKey is returned when base-path resolution needs a foreign
	// key that the file-reference column does not declare.
	ErrNoForeignKey = errors.New("column has no foreign key")

	// ErrNoBaseLocation is returned when the foreign-key target declares no
	// base location URIs.
	ErrNoBaseLocation = errors.New("referenced column declares no base locations")
)

// Package state provides run-history tracking for the formatter using
// SQLite. Each invocation of the transform is recorded as a run with its
// inputs, row counts, and outcome.
package state

import "time"

// RunStatus represents the status of a format run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded invocation of the transform.
type Run struct {
	ID           string
	DatasetPath  string
	MainResource string
	FileColumn   int
	SeriesCount  int64
	RowCount     int64
	Status       RunStatus
	Error        string
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// Store is the run-history persistence interface.
type Store interface {
	// Open opens the store at the given path. Use ":memory:" for an
	// in-memory store.
	Open(path string) error

	// Close releases the underlying database.
	Close() error

	// InitSchema creates the schema if it does not exist.
	InitSchema() error

	// CreateRun records the start of a run and returns it.
	CreateRun(datasetPath, mainResource string, fileColumn int) (*Run, error)

	// CompleteRun marks a run as finished with the given status and counts.
	CompleteRun(id string, status RunStatus, seriesCount, rowCount int64, errMsg string) error

	// GetRun retrieves a run by ID.
	GetRun(id string) (*Run, error)

	// ListRuns retrieves the most recent runs up to the given limit.
	ListRuns(limit int) ([]*Run, error)
}

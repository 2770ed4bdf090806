// Package config provides configuration management for the longform CLI.
// Configuration is resolved from defaults, an optional longform.yaml file,
// LONGFORM_-prefixed environment variables, and command-line flags, in
// increasing order of precedence.
package config

// Defaults used when nothing else sets a value.
const (
	DefaultMainResource = "learningData"
	DefaultOutputDir    = "output"
	DefaultStateFile    = ".longform/state.db"
	DefaultOutput       = "table"
	DefaultParallelism  = 1
)

// Config holds all CLI configuration options.
type Config struct {
	// DatasetDir is the input dataset directory (must contain datasetDoc.json).
	DatasetDir string `koanf:"dataset_dir"`

	// OutputDir is where the formatted output dataset is written.
	OutputDir string `koanf:"output_dir"`

	// MainResource is the ID of the resource holding the entity rows.
	MainResource string `koanf:"main_resource"`

	// FileColIndex is the explicit file-reference column index.
	// Negative means discover it from metadata.
	FileColIndex int `koanf:"file_col_index"`

	// Parallelism bounds concurrent series file loads.
	Parallelism int `koanf:"parallelism"`

	// StatePath is the path to the SQLite run-history database.
	StatePath string `koanf:"state_path"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// OutputFormat selects how tabular command output renders
	// (table|json|csv|markdown).
	OutputFormat string `koanf:"output"`
}

package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid for commands that read the
// input dataset.
func (c *Config) Validate() error {
	if c.DatasetDir == "" {
		return fmt.Errorf("dataset_dir is required")
	}
	if c.FileColIndex < -1 {
		return fmt.Errorf("file_col_index must be -1 (auto) or a column index, got %d", c.FileColIndex)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.DatasetDir); os.IsNotExist(err) {
		return fmt.Errorf("dataset directory does not exist: %s\nHint: pass --dataset-dir or set dataset_dir in longform.yaml", c.DatasetDir)
	}
	return nil
}

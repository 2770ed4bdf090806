// Package adapter provides database adapter interfaces and implementations
// for exporting formatted tables into an analytical database.
package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "duckdb")
	Type string

	// Path is the file path for file-based databases.
	// Use ":memory:" for an in-memory database.
	Path string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Column represents a column in a database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// Metadata holds metadata about a database table.
type Metadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// LoadCSV loads data from a CSV file into a table.
	// If the table doesn't exist, it will be created with inferred schema.
	LoadCSV(ctx context.Context, tableName string, filePath string) error
}

// Factory constructs an unconnected adapter.
type Factory func() Adapter

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes an adapter factory available by type name. Adapters call
// this from init().
func Register(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// Get returns the factory registered under the given type name.
func Get(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// IsRegistered reports whether an adapter type is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// ListAdapters returns the registered adapter type names, sorted.
func ListAdapters() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewAdapter creates an unconnected adapter for the configured type.
func NewAdapter(cfg Config) (Adapter, error) {
	f, ok := Get(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("unknown adapter type %q (registered: %v)", cfg.Type, ListAdapters())
	}
	return f(), nil
}

package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckDBSelfRegistration(t *testing.T) {
	// DuckDB should be auto-registered via init()
	assert.True(t, IsRegistered("duckdb"), "duckdb adapter should be auto-registered")
}

func TestListAdapters(t *testing.T) {
	adapters := ListAdapters()
	assert.Contains(t, adapters, "duckdb", "duckdb should be in adapter list")
}

func TestGet(t *testing.T) {
	factory, ok := Get("duckdb")
	require.True(t, ok, "Get(duckdb) should return true")
	require.NotNil(t, factory, "Get(duckdb) should return non-nil factory")

	_, ok = Get("nonexistent")
	assert.False(t, ok, "Get(nonexistent) should return false")
}

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter(Config{Type: "duckdb", Path: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, a)

	_, err = NewAdapter(Config{Type: "unknown_db"})
	assert.Error(t, err)
}

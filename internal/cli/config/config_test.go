package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dataset-dir", "", "")
	fs.String("output-dir", "", "")
	fs.String("main-resource", "", "")
	fs.Int("file-col-index", -1, "")
	fs.Int("parallelism", 0, "")
	fs.String("state", "", "")
	fs.Bool("verbose", false, "")
	fs.String("output", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultMainResource, cfg.MainResource)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, -1, cfg.FileColIndex)
	assert.Equal(t, DefaultParallelism, cfg.Parallelism)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "longform.yaml")
	content := "dataset_dir: mydata\nmain_resource: entities\nparallelism: 4\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	// Relative paths in the file resolve against the file's directory.
	assert.Equal(t, filepath.Join(dir, "mydata"), cfg.DatasetDir)
	assert.Equal(t, "entities", cfg.MainResource)
	assert.Equal(t, 4, cfg.Parallelism)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "longform.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("main_resource: entities\n"), 0644))

	t.Setenv("LONGFORM_MAIN_RESOURCE", "fromenv")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.MainResource)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("LONGFORM_MAIN_RESOURCE", "fromenv")

	fs := newFlagSet()
	require.NoError(t, fs.Set("main-resource", "fromflag"))
	require.NoError(t, fs.Set("file-col-index", "2"))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "fromflag", cfg.MainResource)
	assert.Equal(t, 2, cfg.FileColIndex)
}

func TestLoad_StateFlagMapsToStatePath(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Set("state", "/tmp/runs.db"))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/runs.db", cfg.StatePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{DatasetDir: "x", FileColIndex: -1, Parallelism: 1},
		},
		{
			name:    "missing dataset dir",
			cfg:     Config{FileColIndex: -1, Parallelism: 1},
			wantErr: true,
		},
		{
			name:    "bad column index",
			cfg:     Config{DatasetDir: "x", FileColIndex: -2, Parallelism: 1},
			wantErr: true,
		},
		{
			name:    "bad parallelism",
			cfg:     Config{DatasetDir: "x", FileColIndex: -1, Parallelism: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDirectories(t *testing.T) {
	cfg := Config{DatasetDir: filepath.Join(t.TempDir(), "nope")}
	assert.Error(t, cfg.ValidateDirectories())

	cfg.DatasetDir = t.TempDir()
	assert.NoError(t, cfg.ValidateDirectories())
}

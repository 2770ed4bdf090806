package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configFileUsed tracks which config file the last load read, if any.
var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > longform.yaml > longform.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"longform.yaml", "longform.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not
// absolute. Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"main_resource":  DefaultMainResource,
		"output_dir":     DefaultOutputDir,
		"file_col_index": -1,
		"parallelism":    DefaultParallelism,
		"state_path":     DefaultStateFile,
		"verbose":        false,
		"output":         DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables (LONGFORM_ prefix)
	// Transform: LONGFORM_DATASET_DIR -> dataset_dir
	if err := k.Load(env.Provider("LONGFORM_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LONGFORM_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// kebab-case flags map to snake_case config keys; --state is
			// shorthand for state_path.
			key := strings.ReplaceAll(f.Name, "-", "_")
			if key == "state" {
				return "state_path", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Resolve paths found in a config file relative to that file's directory.
	if configFileUsed != "" {
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			base := filepath.Dir(abs)
			if flags == nil || !flags.Changed("dataset-dir") {
				cfg.DatasetDir = resolvePathRelativeTo(cfg.DatasetDir, base)
			}
			if flags == nil || !flags.Changed("output-dir") {
				cfg.OutputDir = resolvePathRelativeTo(cfg.OutputDir, base)
			}
			if flags == nil || !flags.Changed("state") {
				cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, base)
			}
		}
	}

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file read by the last
// Load, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

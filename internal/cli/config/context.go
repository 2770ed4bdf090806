package config

import (
	"context"
	"log/slog"
)

// configKey is used to store the loaded config in a command context.
type configKey struct{}

// loggerKey is used to store the logger in a command context.
type loggerKey struct{}

// WithConfig returns a context carrying the loaded config.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the context, or a default config if
// none was stored.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		MainResource: DefaultMainResource,
		OutputDir:    DefaultOutputDir,
		FileColIndex: -1,
		Parallelism:  DefaultParallelism,
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
	}
}

// WithLogger returns a context carrying the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext retrieves the logger from the context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard is the safe fallback for library callers without a CLI.
	return slog.New(slog.DiscardHandler)
}

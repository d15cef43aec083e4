// Package xwlog constructs the zap loggers used across the engine.
package xwlog

import "go.uber.org/zap"

// New builds a production logger: JSON output, info level. Used by the
// Cloud Function entrypoint where logs are consumed by Cloud Logging.
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}

// NewDevelopment builds a human-readable console logger. Used by the CLI.
func NewDevelopment() (*zap.Logger, error) {
	return zap.NewDevelopment()
}

// Nop returns a logger that discards everything, for tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Package logger constructs the zap.Logger used throughout this module.
// Every component takes a *zap.Logger rather than reaching for a global,
// so tests and the CLI entrypoints can each wire their own.
package logger

import "go.uber.org/zap"

// LoggerConfig controls the verbosity and encoding of the constructed
// logger.
type LoggerConfig struct {
	// Debug selects zap's development config (human-readable, debug level
	// and above, stack traces on warn). Production runs want this false.
	Debug bool
}

// NewLogger builds a *zap.Logger from cfg.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	if cfg != nil && cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

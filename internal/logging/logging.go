// Package logging builds the shared zap logger from the survey config.
// Commands that own the terminal with a live display route everything
// to the configured log file instead of stderr.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"satradar/internal/config"
)

// Options adjust how the logger is built beyond the config file.
type Options struct {
	// Verbose forces debug level regardless of the configured level.
	Verbose bool
	// FileOnly routes all output to the configured log file, for
	// commands whose stdout and stderr belong to a live display.
	FileOnly bool
}

// New builds a zap logger from the logging section of the config.
// Unknown level strings fall back to info.
func New(lc config.LoggingConfig, opts Options) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if lc.Format == "text" {
		zcfg.Encoding = "console"
	}

	lvl := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(lc.Level); err == nil {
		lvl = parsed
	}
	if opts.Verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	if opts.FileOnly {
		if lc.File == "" {
			return nil, fmt.Errorf("file-only logging requires a log file path")
		}
		zcfg.OutputPaths = []string{lc.File}
		zcfg.ErrorOutputPaths = []string{lc.File}
	}

	return zcfg.Build()
}

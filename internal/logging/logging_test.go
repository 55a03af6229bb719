package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"satradar/internal/config"
)

func TestNewDefaultLevel(t *testing.T) {
	logger, err := New(config.DefaultConfig().Logging, Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level enabled by default")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level disabled by default")
	}
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	logger, err := New(config.DefaultConfig().Logging, Options{Verbose: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected verbose to enable debug level")
	}
}

func TestNewUnknownLevelFallsBack(t *testing.T) {
	lc := config.DefaultConfig().Logging
	lc.Level = "loud"

	logger, err := New(lc, Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected fallback to info level")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug disabled after fallback")
	}
}

func TestNewFileOnlyWritesToFile(t *testing.T) {
	lc := config.DefaultConfig().Logging
	lc.File = filepath.Join(t.TempDir(), "sweep.log")

	logger, err := New(lc, Options{FileOnly: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("sweep started")
	logger.Sync()

	info, err := os.Stat(lc.File)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected log output in the file")
	}
}

func TestNewFileOnlyRequiresPath(t *testing.T) {
	lc := config.DefaultConfig().Logging
	lc.File = ""

	if _, err := New(lc, Options{FileOnly: true}); err == nil {
		t.Fatal("expected error without a log file path")
	}
}

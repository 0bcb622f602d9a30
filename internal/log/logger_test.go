package log

import (
	"log/slog"
	"testing"
)

func TestSetupSetsDefault(t *testing.T) {
	logger := Setup(slog.LevelInfo)
	if logger == nil {
		t.Fatal("Setup returned nil logger")
	}
	if slog.Default() == nil {
		t.Fatal("default logger not installed")
	}
	if !logger.Enabled(nil, slog.LevelInfo) {
		t.Error("info level should be enabled")
	}
	if logger.Enabled(nil, slog.LevelDebug) {
		t.Error("debug level should be disabled at info")
	}
}

func TestForComponent(t *testing.T) {
	Setup(slog.LevelInfo)
	if ForComponent(ComponentLedger) == nil {
		t.Fatal("ForComponent returned nil")
	}
}

package global

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogInitWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "engine.log")

	if err := LogInit(LogConfig{Level: "debug", File: logFile}); err != nil {
		t.Fatalf("LogInit failed: %v", err)
	}
	if Log() == nil {
		t.Fatal("Log() returned nil after LogInit")
	}

	Log().Info("log init check")
	_ = Log().Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "log init check") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestLogInitBadLevelFallsBack(t *testing.T) {
	if err := LogInit(LogConfig{Level: "shouting", File: ""}); err != nil {
		t.Fatalf("LogInit failed: %v", err)
	}
	if Log() == nil {
		t.Fatal("Log() returned nil after LogInit")
	}
}

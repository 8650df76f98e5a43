package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesDefaultFile(t *testing.T) {
	oldFile, oldLevel := flagLogFile, flagLogLevel
	defer func() { flagLogFile, flagLogLevel = oldFile, oldLevel }()
	flagLogFile, flagLogLevel = "", "warn"

	path := filepath.Join(t.TempDir(), "logs", "tanks.log")
	logger, closer, err := newLogger("tanks", path)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Warn("could not save match", "game", "tanks")
	logger.Info("hidden below warn")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "could not save match") {
		t.Errorf("log file = %q, expected the warning", data)
	}
	if strings.Contains(string(data), "hidden below warn") {
		t.Error("info line should be filtered at warn level")
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	oldLevel := flagLogLevel
	defer func() { flagLogLevel = oldLevel }()
	flagLogLevel = "loud"

	if _, _, err := newLogger("tanks", ""); err == nil {
		t.Error("newLogger() with an unknown level should fail")
	}
}

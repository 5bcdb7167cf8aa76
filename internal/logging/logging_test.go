package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"default is info", false, false},
		{"verbose enables debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.verbose)
			if logger == nil {
				t.Fatal("NewLogger returned nil")
			}
			got := logger.Desugar().Core().Enabled(zapcore.DebugLevel)
			if got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNewWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "diarsrt.log")

	logger, err := New(Options{File: logPath})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Infow("Subtitle file created", "path", "output/x.srt")
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Subtitle file created") {
		t.Errorf("log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), "output/x.srt") {
		t.Errorf("log file missing field, got: %s", data)
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	// must not panic
	logger.Infow("ignored", "k", "v")
	logger.Close()
}

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	logger, closer, err := New(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("session invalidated", "reason", "unauthorized")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "session invalidated") || !strings.Contains(out, "reason=unauthorized") {
		t.Errorf("log = %q, want info record", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("log = %q, debug record should be filtered", out)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("mode = %o, want 600", perm)
	}
}

func TestNewEmptyPathDiscards(t *testing.T) {
	logger, closer, err := New("", slog.LevelDebug)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("nowhere")
	if _, ok := closer.(nopCloser); !ok {
		t.Errorf("closer = %T, want nopCloser", closer)
	}
	for range 2 {
		if err := closer.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	}
}

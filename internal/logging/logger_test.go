package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := parseLevel(tc.in)
		if err != nil {
			t.Fatalf("parseLevel(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := parseLevel("bogus"); err == nil {
		t.Error("expected error for unsupported level")
	}
}

func TestNewWritesToFileSink(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, cleanup, err := New("debug", dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	logger.Info("hello from test")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "log.txt"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected file sink to contain the log line")
	}
}

func TestNewWithoutFilePath(t *testing.T) {
	t.Parallel()
	logger, cleanup, err := New("info", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()
	if logger == nil {
		t.Fatal("expected a usable logger with console sink only")
	}
}

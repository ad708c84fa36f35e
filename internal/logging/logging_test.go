package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	oldStderr := os.Stderr
	oldLogger := slog.Default()
	os.Stderr = w
	defer func() {
		os.Stderr = oldStderr
		slog.SetDefault(oldLogger)
	}()

	fn()

	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read stderr: %v", err)
	}
	return string(out)
}

func TestInitDefaultLevelWarn(t *testing.T) {
	output := captureStderr(t, func() {
		Init(false)
		slog.Debug("probe detail")
		slog.Warn("category failed")
	})

	if strings.Contains(output, "probe detail") {
		t.Fatalf("expected debug output to be suppressed, got %q", output)
	}
	if !strings.Contains(output, "category failed") {
		t.Fatalf("expected warn output, got %q", output)
	}
}

func TestInitVerboseLevelDebug(t *testing.T) {
	output := captureStderr(t, func() {
		Init(true)
		slog.Debug("probe detail")
	})

	if !strings.Contains(output, "probe detail") {
		t.Fatalf("expected debug output in verbose mode, got %q", output)
	}
}

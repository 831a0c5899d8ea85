package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"":        log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)
	logger.Debug("hidden")
	logger.Info("task added", "id", "42")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "task added") || !strings.Contains(out, "id=42") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tabtodo.log")
	logger, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Debug("saved", "count", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "count=3") {
		t.Fatalf("expected log line in file, got %q", raw)
	}
}

func TestOpenWithoutPathDiscards(t *testing.T) {
	logger, closer, err := Open("", "info")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogBeforeInitIsNoop(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	Info("ignored")
	Warn("ignored", "k", "v")

	if l := WithPrefix("fetch"); l == nil {
		t.Fatal("WithPrefix should never return nil")
	}
}

func TestInitWriter(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	InitWriter(&buf)

	Warn("fallback batch", "reason", "empty")

	out := buf.String()
	if !strings.Contains(out, "fallback batch") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "reason=empty") {
		t.Errorf("expected keyvals in output, got %q", out)
	}
}

func TestInitCreatesDatedFile(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Close()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("read log dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one log file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "kittyswipe-") {
		t.Errorf("unexpected log file name %q", entries[0].Name())
	}
}

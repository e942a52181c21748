package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.Debug("x")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if l.Path() != "" {
		t.Fatal("nil logger has a path")
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Info("hello %d", 1)
	l.Debug("hidden")
	l.Warn("careful")
	l.Error("bad %s", "thing")

	out := buf.String()
	for _, want := range []string{"[INFO] hello 1", "[WARN] careful", "[ERROR] bad thing"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug written without verbose")
	}

	buf.Reset()
	New(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Errorf("verbose debug missing: %q", buf.String())
	}
}

func TestSetupWritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := Setup(dir, false, false, []string{"vidkeep", "concat"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	l.Info("first run")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, FileNameFor(time.Now()))
	if l.Path() != want {
		t.Fatalf("Path() = %q, want %q", l.Path(), want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Command: vidkeep concat") || !strings.Contains(string(data), "first run") {
		t.Fatalf("unexpected log content: %s", data)
	}
}

func TestSetupDisabled(t *testing.T) {
	l, err := Setup(t.TempDir(), false, true, nil)
	if err != nil || l != nil {
		t.Fatalf("got %v, %v; want nil, nil", l, err)
	}
}

func TestFileNameFor(t *testing.T) {
	got := FileNameFor(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	if got != "06-01-2024-log.log" {
		t.Fatalf("got %q", got)
	}
}

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChdirRestore(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	wd, err := Chdir(dir)
	if err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	cur, _ := os.Getwd()
	if resolved, _ := filepath.EvalSymlinks(dir); cur != dir && cur != resolved {
		t.Fatalf("cwd = %q, want %q", cur, dir)
	}
	if wd.Previous() != orig {
		t.Fatalf("Previous() = %q, want %q", wd.Previous(), orig)
	}

	if err := wd.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := wd.Restore(); err != nil {
		t.Fatalf("second Restore: %v", err)
	}
	cur, _ = os.Getwd()
	if cur != orig {
		t.Fatalf("cwd after restore = %q, want %q", cur, orig)
	}
}

func TestChdirRestoresAfterPanic(t *testing.T) {
	orig, _ := os.Getwd()
	dir := t.TempDir()

	func() {
		defer func() { _ = recover() }()
		wd, err := Chdir(dir)
		if err != nil {
			t.Fatalf("Chdir: %v", err)
		}
		defer func() { _ = wd.Restore() }()
		panic("boom")
	}()

	cur, _ := os.Getwd()
	if cur != orig {
		t.Fatalf("cwd after panic = %q, want %q", cur, orig)
	}
}

func TestChdirMissing(t *testing.T) {
	orig, _ := os.Getwd()
	if _, err := Chdir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	cur, _ := os.Getwd()
	if cur != orig {
		t.Fatalf("cwd changed on failed Chdir: %q", cur)
	}
}

func TestFormatBytesReadable(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{3 << 30, "3.00 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytesReadable(tt.in); got != tt.want {
			t.Errorf("FormatBytesReadable(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDurationFromSecs(t *testing.T) {
	if got := FormatDurationFromSecs(3725); got != "01:02:05" {
		t.Errorf("got %q", got)
	}
	if got := FormatDurationFromSecs(-4); got != "00:00:00" {
		t.Errorf("negative: got %q", got)
	}
}

func TestTotalSizeAndExists(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	if err := os.WriteFile(a, make([]byte, 10), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, make([]byte, 5), 0644); err != nil {
		t.Fatal(err)
	}

	if got := TotalSize([]string{a, b, filepath.Join(dir, "nope")}); got != 15 {
		t.Errorf("TotalSize = %d, want 15", got)
	}
	if !FileExists(a) || FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists mismatch")
	}
	if !IsDirectory(dir) || IsDirectory(a) {
		t.Error("IsDirectory mismatch")
	}
	if err := EnsureDirectoryWritable(dir); err != nil {
		t.Errorf("EnsureDirectoryWritable: %v", err)
	}
	if err := EnsureDirectoryWritable(a); err == nil {
		t.Error("expected error for file path")
	}
}

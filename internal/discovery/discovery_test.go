package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindVideoFilesRestrictedToMP4(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp4", "b.mp4", "c.mov")

	got, err := FindVideoFiles(dir, []string{".mp4"})
	if err != nil {
		t.Fatalf("FindVideoFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindVideoFilesDefaultSet(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.MP4", "b.mkv", "c.mov", "d.avi", "notes.txt", ".hidden.mp4")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "sub.mp4"), "nested.mp4")

	got, err := FindVideoFiles(dir, DefaultVideoExtensions)
	if err != nil {
		t.Fatalf("FindVideoFiles: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d files (%v), want 4", len(got), got)
	}
	for _, f := range got {
		if !filepath.IsAbs(f) {
			t.Errorf("%s is not absolute", f)
		}
	}
}

func TestFindVideoFilesEmptyIsNotError(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.txt")

	got, err := FindVideoFiles(dir, DefaultVideoExtensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestFindVideoFilesNotADirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp4")

	if _, err := FindVideoFiles(filepath.Join(dir, "a.mp4"), DefaultVideoExtensions); err == nil {
		t.Fatal("expected error for file input")
	}
	if _, err := FindVideoFiles(filepath.Join(dir, "missing"), DefaultVideoExtensions); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"MP4", ".Mov", " ", "mkv "})
	want := []string{".mp4", ".mov", ".mkv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"clip.mp4", true},
		{"CLIP.MP4", true},
		{"clip.mov", false},
		{"clip", false},
	}
	for _, tt := range tests {
		if got := HasExtension(tt.path, []string{".mp4"}); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

package organize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/vidkeep/internal/reporter"
)

type errorReporter struct {
	reporter.NullReporter
	errors []reporter.ReporterError
}

func (r *errorReporter) Error(e reporter.ReporterError) { r.errors = append(r.errors, e) }

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestRunBucketsByDate(t *testing.T) {
	dir := t.TempDir()
	march5 := time.Date(2023, 3, 5, 12, 0, 0, 0, time.Local)
	march6 := time.Date(2023, 3, 6, 12, 0, 0, 0, time.Local)

	touch(t, filepath.Join(dir, "a.mp4"), march5)
	touch(t, filepath.Join(dir, "b.MP4"), march6)
	touch(t, filepath.Join(dir, "notes.txt"), march5)
	touch(t, filepath.Join(dir, "edit.toproj"), march5)
	touch(t, filepath.Join(dir, "render.bat"), march5)

	res, err := Run(context.Background(), Options{Dir: dir, Workers: 2})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res.Moved != 2 || res.Skipped != 3 {
		t.Errorf("result = %+v", res)
	}
	for _, p := range []string{"2023-03-05/a.mp4", "2023-03-06/b.MP4", "notes.txt", "edit.toproj", "render.bat"} {
		if !exists(filepath.Join(dir, p)) {
			t.Errorf("missing %s", p)
		}
	}
	if exists(filepath.Join(dir, "a.mp4")) {
		t.Error("a.mp4 not moved")
	}
}

func TestRunMigratesLegacyFolders(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "01-15-2022"))
	mkdir(t, filepath.Join(dir, "02-01-2022"))
	mkdir(t, filepath.Join(dir, "2022-02-01"))
	mkdir(t, filepath.Join(dir, "holiday"))

	res, err := Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res.RenamedDirs != 1 {
		t.Errorf("RenamedDirs = %d, want 1", res.RenamedDirs)
	}
	if !exists(filepath.Join(dir, "2022-01-15")) || exists(filepath.Join(dir, "01-15-2022")) {
		t.Error("01-15-2022 not migrated")
	}
	if !exists(filepath.Join(dir, "02-01-2022")) {
		t.Error("folder renamed over an existing target")
	}
	if !exists(filepath.Join(dir, "holiday")) {
		t.Error("non-date folder touched")
	}
}

func TestRunSkipsExistingDestination(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2023, 3, 5, 12, 0, 0, 0, time.Local)
	mkdir(t, filepath.Join(dir, "2023-03-05"))
	touch(t, filepath.Join(dir, "2023-03-05", "a.mp4"), day)
	touch(t, filepath.Join(dir, "a.mp4"), day)

	res, err := Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res.Moved != 0 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if !exists(filepath.Join(dir, "a.mp4")) {
		t.Error("source removed although destination existed")
	}
}

func TestRunCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2023, 3, 5, 12, 0, 0, 0, time.Local)
	touch(t, filepath.Join(dir, "a.mov"), day)
	touch(t, filepath.Join(dir, "b.mp4"), day)

	res, err := Run(context.Background(), Options{Dir: dir, Extensions: []string{".mov"}})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res.Moved != 1 || !exists(filepath.Join(dir, "2023-03-05", "a.mov")) || !exists(filepath.Join(dir, "b.mp4")) {
		t.Errorf("result = %+v", res)
	}
}

func TestRunMissingDir(t *testing.T) {
	rep := &errorReporter{}
	if _, err := Run(context.Background(), Options{Dir: filepath.Join(t.TempDir(), "gone"), Reporter: rep}); err == nil {
		t.Error("expected error for missing directory")
	}
	if len(rep.errors) != 1 || rep.errors[0].Title != "Organize Error" {
		t.Errorf("reported errors = %+v", rep.errors)
	}
}

func TestCreationTimeNotAfterModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp4")
	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	touch(t, path, old)

	got, err := CreationTime(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(old) {
		t.Errorf("CreationTime() = %v, want %v", got, old)
	}
}

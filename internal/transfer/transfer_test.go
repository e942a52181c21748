package transfer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/vidkeep/internal/reporter"
)

type recordingReporter struct {
	reporter.NullReporter
	outcomes []reporter.FileOutcome
	progress []uint64
	summary  *reporter.TransferSummary
}

func (r *recordingReporter) FileComplete(o reporter.FileOutcome) { r.outcomes = append(r.outcomes, o) }
func (r *recordingReporter) FileBytes(written, _ uint64)         { r.progress = append(r.progress, written) }
func (r *recordingReporter) TransferComplete(s reporter.TransferSummary) {
	r.summary = &s
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCopiesAndKeepsOriginals(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.mp4"), []byte("alpha"))
	writeFile(t, filepath.Join(src, "b.mp4"), []byte("bravo!"))
	writeFile(t, filepath.Join(src, "c.mov"), []byte("charlie"))

	rep := &recordingReporter{}
	sum, err := Run(context.Background(), Options{SourceDir: src, DestDir: dst, Reporter: rep})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if sum.Moved != 2 || sum.Bytes != 11 || sum.OriginalsDeleted {
		t.Errorf("summary = %+v", sum)
	}
	got, err := os.ReadFile(filepath.Join(dst, "b.mp4"))
	if err != nil || string(got) != "bravo!" {
		t.Errorf("b.mp4 = %q, %v", got, err)
	}
	if _, err := os.Stat(filepath.Join(dst, "c.mov")); !os.IsNotExist(err) {
		t.Error("c.mov transferred with .mp4 filter")
	}
	if _, err := os.Stat(filepath.Join(src, "a.mp4")); err != nil {
		t.Error("original removed without DeleteOriginals")
	}
	if rep.summary == nil || rep.summary.Moved != 2 {
		t.Errorf("TransferComplete = %+v", rep.summary)
	}
}

func TestRunDeletesOriginals(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.mp4"), []byte("alpha"))

	sum, err := Run(context.Background(), Options{SourceDir: src, DestDir: dst, DeleteOriginals: true})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if !sum.OriginalsDeleted {
		t.Error("OriginalsDeleted not set")
	}
	if _, err := os.Stat(filepath.Join(src, "a.mp4")); !os.IsNotExist(err) {
		t.Error("original still present")
	}
	if _, err := os.Stat(filepath.Join(dst, "a.mp4")); err != nil {
		t.Errorf("copy missing: %v", err)
	}
}

func TestRunSkipsExistingDestination(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.mp4"), []byte("new"))
	writeFile(t, filepath.Join(dst, "a.mp4"), []byte("old"))

	rep := &recordingReporter{}
	sum, err := Run(context.Background(), Options{SourceDir: src, DestDir: dst, DeleteOriginals: true, Reporter: rep})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if sum.Skipped != 1 || sum.Moved != 0 {
		t.Errorf("summary = %+v", sum)
	}
	got, _ := os.ReadFile(filepath.Join(dst, "a.mp4"))
	if string(got) != "old" {
		t.Errorf("existing destination overwritten: %q", got)
	}
	if _, err := os.Stat(filepath.Join(src, "a.mp4")); err != nil {
		t.Error("skipped original deleted")
	}
	if len(rep.outcomes) != 1 || !rep.outcomes[0].Skipped {
		t.Errorf("outcomes = %+v", rep.outcomes)
	}
}

func TestRunOrganizesDestination(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := filepath.Join(src, "a.mp4")
	writeFile(t, path, []byte("alpha"))
	day := time.Date(2023, 3, 5, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, day, day); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(context.Background(), Options{SourceDir: src, DestDir: dst, OrganizeByDate: true}); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "2023-03-05", "a.mp4")); err != nil {
		t.Errorf("organized copy missing: %v", err)
	}
}

func TestRunRejectsSameDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(context.Background(), Options{SourceDir: dir, DestDir: dir}); !errors.Is(err, ErrSameDirectory) {
		t.Errorf("Run() = %v, want ErrSameDirectory", err)
	}
}

func TestRunMissingSource(t *testing.T) {
	if _, err := Run(context.Background(), Options{SourceDir: filepath.Join(t.TempDir(), "gone"), DestDir: t.TempDir()}); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestCopyFileReportsProgress(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.mp4")
	data := bytes.Repeat([]byte("x"), bufferSize*2+10)
	writeFile(t, src, data)
	mtime := time.Date(2022, 7, 4, 9, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	var calls []uint64
	dest := filepath.Join(dir, "copy.mp4")
	n, err := CopyFile(src, dest, func(written, total uint64) {
		if total != uint64(len(data)) {
			t.Errorf("total = %d", total)
		}
		calls = append(calls, written)
	})
	if err != nil {
		t.Fatalf("CopyFile() = %v", err)
	}
	if n != uint64(len(data)) {
		t.Errorf("written = %d", n)
	}
	if len(calls) < 2 || calls[len(calls)-1] != uint64(len(data)) {
		t.Errorf("progress calls = %v", calls)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
	if _, err := os.Stat(dest + partSuffix); !os.IsNotExist(err) {
		t.Error("part file left behind")
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.mp4")
	if _, err := CopyFile(filepath.Join(dir, "none.mp4"), dest, nil); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination created for missing source")
	}
}

package naming

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var june1 = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

func TestUniqueNoCollision(t *testing.T) {
	if got := Unique(t.TempDir(), "concat", "mp4", june1); got != "concat_06-01-2024.mp4" {
		t.Fatalf("got %q", got)
	}
}

func TestUniqueAppendsCounter(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "output_06-01-2024.mp4"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	if got := Unique(dir, "output", "mp4", june1); got != "output_06-01-2024_1.mp4" {
		t.Fatalf("got %q, want output_06-01-2024_1.mp4", got)
	}
}

func TestUniqueSkipsTakenCounters(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"output_06-01-2024.mp4", "output_06-01-2024_1.mp4", "output_06-01-2024_2.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if got := Unique(dir, "output", ".mp4", june1); got != "output_06-01-2024_3.mp4" {
		t.Fatalf("got %q", got)
	}
}

func TestUniqueSuccessiveAllocationsDiffer(t *testing.T) {
	dir := t.TempDir()

	first := Unique(dir, "output", "mp4", june1)
	if err := os.WriteFile(filepath.Join(dir, first), nil, 0644); err != nil {
		t.Fatal(err)
	}
	second := Unique(dir, "output", "mp4", june1)

	if first == second {
		t.Fatalf("both allocations returned %q", first)
	}
	if _, err := os.Stat(filepath.Join(dir, second)); !os.IsNotExist(err) {
		t.Fatalf("second allocation %q already exists", second)
	}
}

func TestUniqueBasesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	concat := Unique(dir, "concat", "mp4", june1)
	output := Unique(dir, "output", "mp4", june1)
	if concat != "concat_06-01-2024.mp4" || output != "output_06-01-2024.mp4" {
		t.Fatalf("got %q and %q", concat, output)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	if got := UniquePath(dir, "a", "mkv", june1); got != filepath.Join(dir, "a_06-01-2024.mkv") {
		t.Fatalf("got %q", got)
	}
}

// Package organize buckets video files into YYYY-MM-DD folders by creation date.
package organize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/vidkeep/internal/discovery"
	"github.com/five82/vidkeep/internal/logging"
	"github.com/five82/vidkeep/internal/reporter"
)

// Folder layouts.
const (
	FolderLayout       = "2006-01-02"
	LegacyFolderLayout = "01-02-2006"
)

// ignoredExtensions are project and script files that live beside footage.
var ignoredExtensions = []string{".toproj", ".bat"}

// Options configures a run.
type Options struct {
	Dir        string
	Extensions []string // Files to bucket, defaults to .mp4
	Workers    int      // Concurrent stat calls, defaults to GOMAXPROCS
	Logger     *logging.Logger
	Reporter   reporter.Reporter
}

// Result summarizes a run.
type Result struct {
	Moved       int
	Skipped     int
	RenamedDirs int
}

type candidate struct {
	name string
	date string
}

// Run migrates legacy MM-DD-YYYY folders in opts.Dir to YYYY-MM-DD, then
// moves each matching file into the folder for its creation date. A file
// whose destination already exists is skipped.
func Run(ctx context.Context, opts Options) (*Result, error) {
	rep := opts.Reporter
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".mp4"}
	}
	log := opts.Logger

	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		log.Error("Cannot read %s: %v", opts.Dir, err)
		rep.Error(reporter.ReporterError{
			Title:      "Organize Error",
			Message:    err.Error(),
			Context:    fmt.Sprintf("Folder: %s", opts.Dir),
			Suggestion: "Check the output directory in settings",
		})
		return nil, fmt.Errorf("cannot organize %s: %w", opts.Dir, err)
	}
	log.Info("Organizing videos in %s", opts.Dir)

	res := &Result{}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			renamed, err := migrateFolder(opts.Dir, name)
			if err != nil {
				log.Warn("Could not rename folder %s: %v", name, err)
				continue
			}
			if renamed != "" {
				log.Info("Renamed folder %s to %s", name, renamed)
				res.RenamedDirs++
			}
			continue
		}
		switch {
		case !e.Type().IsRegular():
			log.Debug("Skipping non-regular file: %s", name)
		case discovery.HasExtension(name, ignoredExtensions):
			log.Debug("Skipping project file: %s", name)
		case !discovery.HasExtension(name, exts):
			log.Debug("Skipping non-video file: %s", name)
		default:
			files = append(files, name)
			continue
		}
		res.Skipped++
	}

	candidates, err := datesFor(ctx, opts.Dir, files, opts.Workers)
	if err != nil {
		log.Error("Reading creation dates in %s failed: %v", opts.Dir, err)
		rep.Error(reporter.ReporterError{
			Title:   "Organize Error",
			Message: err.Error(),
			Context: fmt.Sprintf("Folder: %s", opts.Dir),
		})
		return res, err
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			rep.Warning(fmt.Sprintf("Organize cancelled: %v", err))
			return res, err
		}
		moved, err := moveInto(opts.Dir, c)
		switch {
		case err != nil:
			log.Error("Failed to move %s: %v", c.name, err)
			rep.Warning(fmt.Sprintf("Could not move %s: %v", c.name, err))
			res.Skipped++
		case !moved:
			log.Info("Skipping %s: already present in %s", c.name, c.date)
			res.Skipped++
		default:
			log.Info("Moved %s to %s", c.name, c.date)
			res.Moved++
		}
	}

	rep.OrganizeComplete(reporter.OrganizeSummary{
		Dir:         opts.Dir,
		Moved:       res.Moved,
		Skipped:     res.Skipped,
		RenamedDirs: res.RenamedDirs,
	})
	return res, nil
}

// migrateFolder renames dir/name to the YYYY-MM-DD layout when name is a
// legacy MM-DD-YYYY date and the new name is free. It returns the new name,
// or "" when nothing was renamed.
func migrateFolder(dir, name string) (string, error) {
	t, err := time.Parse(LegacyFolderLayout, name)
	if err != nil {
		return "", nil
	}
	next := t.Format(FolderLayout)
	target := filepath.Join(dir, next)
	if _, err := os.Lstat(target); err == nil {
		return "", nil
	}
	if err := os.Rename(filepath.Join(dir, name), target); err != nil {
		return "", err
	}
	return next, nil
}

// datesFor stats files concurrently and returns them with their folder
// names, in input order.
func datesFor(ctx context.Context, dir string, files []string, workers int) ([]candidate, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]candidate, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			t, err := CreationTime(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("stat %s: %w", name, err)
			}
			out[i] = candidate{name: name, date: t.Local().Format(FolderLayout)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// moveInto moves dir/c.name into dir/c.date, creating the folder. It reports
// false when the destination already exists.
func moveInto(dir string, c candidate) (bool, error) {
	dateDir := filepath.Join(dir, c.date)
	if err := os.MkdirAll(dateDir, 0755); err != nil {
		return false, err
	}
	dest := filepath.Join(dateDir, c.name)
	if _, err := os.Lstat(dest); err == nil {
		return false, nil
	}
	return true, os.Rename(filepath.Join(dir, c.name), dest)
}

// CreationTime returns the earlier of the file's birth time (where the
// platform records one) and its modification time. Copies that preserve
// mtime therefore keep their recording date.
func CreationTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	t := info.ModTime()
	if birth, ok := birthTime(path); ok && birth.Before(t) {
		t = birth
	}
	return t, nil
}

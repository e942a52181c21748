// Package transfer moves video files between folders with byte progress.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/vidkeep/internal/discovery"
	"github.com/five82/vidkeep/internal/logging"
	"github.com/five82/vidkeep/internal/organize"
	"github.com/five82/vidkeep/internal/reporter"
	"github.com/five82/vidkeep/internal/util"
)

// bufferSize is the copy chunk size and progress granularity.
const bufferSize = 1 << 20

// partSuffix marks a destination that is still being written.
const partSuffix = ".part"

// ErrSameDirectory is returned when source and destination resolve to the same folder.
var ErrSameDirectory = errors.New("source and destination are the same directory")

// Options configures a transfer.
type Options struct {
	SourceDir       string
	DestDir         string
	Extensions      []string // Files to move, defaults to .mp4
	DeleteOriginals bool     // Remove each source after a verified copy
	OrganizeByDate  bool     // Bucket DestDir by date afterwards
	Logger          *logging.Logger
	Reporter        reporter.Reporter
}

// Run copies every matching file in SourceDir to DestDir, in listing order.
// Files already present at the destination are skipped. A failed file is
// reported and the run continues; the returned error then counts failures.
func Run(ctx context.Context, opts Options) (*reporter.TransferSummary, error) {
	rep := opts.Reporter
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	log := opts.Logger
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".mp4"}
	}
	start := time.Now()

	if err := checkDirs(opts.SourceDir, opts.DestDir); err != nil {
		log.Error("Transfer %s -> %s: %v", opts.SourceDir, opts.DestDir, err)
		rep.Error(reporter.ReporterError{
			Title:      "Transfer Error",
			Message:    err.Error(),
			Context:    fmt.Sprintf("Source: %s, Destination: %s", opts.SourceDir, opts.DestDir),
			Suggestion: "Check both directories in settings",
		})
		return nil, err
	}

	files, err := discovery.FindVideoFiles(opts.SourceDir, exts)
	if err != nil {
		log.Error("Scan of %s failed: %v", opts.SourceDir, err)
		rep.Error(reporter.ReporterError{
			Title:   "Scan Failed",
			Message: err.Error(),
			Context: fmt.Sprintf("Source: %s", opts.SourceDir),
		})
		return nil, err
	}

	summary := &reporter.TransferSummary{OriginalsDeleted: opts.DeleteOriginals}
	if len(files) == 0 {
		log.Info("No files to transfer in %s", opts.SourceDir)
		rep.Warning(fmt.Sprintf("No video files found in %s", opts.SourceDir))
		return summary, nil
	}

	total := util.TotalSize(files)
	rep.TransferStarted(reporter.TransferStartInfo{
		SourceDir:  opts.SourceDir,
		DestDir:    opts.DestDir,
		TotalFiles: len(files),
		TotalBytes: total,
	})
	if !util.CheckDiskSpace(opts.DestDir, total, log.Warn) {
		rep.Warning(fmt.Sprintf("Low disk space in %s for %s of video", opts.DestDir, util.FormatBytesReadable(total)))
	}

	for i, src := range files {
		if ctx.Err() != nil {
			rep.Warning(fmt.Sprintf("Transfer cancelled: %v", ctx.Err()))
			break
		}

		name := filepath.Base(src)
		dest := filepath.Join(opts.DestDir, name)
		size, _ := util.GetFileSize(src)

		if util.FileExists(dest) {
			log.Warn("Skipping %s: %s already exists", name, dest)
			rep.FileComplete(reporter.FileOutcome{Name: name, Destination: dest, Skipped: true, Reason: "already exists"})
			summary.Skipped++
			continue
		}

		rep.FileStarted(reporter.FileProgressContext{
			CurrentFile: i + 1,
			TotalFiles:  len(files),
			Name:        name,
			Size:        size,
		})

		written, err := CopyFile(src, dest, rep.FileBytes)
		if err != nil {
			log.Error("Failed to copy %s to %s: %v", src, dest, err)
			rep.Error(reporter.ReporterError{
				Title:   "Copy Failed",
				Message: err.Error(),
				Context: fmt.Sprintf("File: %s", src),
			})
			summary.Failed++
			continue
		}
		summary.Bytes += written
		summary.Moved++
		log.Info("Copied %s to %s (%s)", name, opts.DestDir, util.FormatBytesReadable(written))
		rep.FileComplete(reporter.FileOutcome{Name: name, Destination: dest})

		if opts.DeleteOriginals {
			if err := os.Remove(src); err != nil {
				log.Warn("Could not delete original %s: %v", src, err)
				rep.Warning(fmt.Sprintf("Could not delete original %s: %v", name, err))
			}
		}
	}

	if opts.OrganizeByDate && summary.Moved > 0 {
		rep.StageProgress(reporter.StageProgress{Stage: "organize", Message: fmt.Sprintf("Sorting %s by date", opts.DestDir)})
		if _, err := organize.Run(ctx, organize.Options{
			Dir:        opts.DestDir,
			Extensions: exts,
			Logger:     log,
			Reporter:   rep,
		}); err != nil {
			rep.Warning(fmt.Sprintf("Organizing %s failed: %v", opts.DestDir, err))
		}
	}

	summary.Duration = time.Since(start)
	rep.TransferComplete(*summary)

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d files failed to transfer", summary.Failed, len(files))
	}
	return summary, nil
}

func checkDirs(src, dest string) error {
	if !util.IsDirectory(src) {
		return fmt.Errorf("source directory does not exist: %s", src)
	}
	if err := util.EnsureDirectoryWritable(dest); err != nil {
		return err
	}
	a, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	b, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	if a == b {
		return ErrSameDirectory
	}
	return nil
}

// CopyFile copies src to dest through a temporary .part file, calling progress
// after every chunk with the bytes written so far and the source size. The
// modification time of src is carried over so date organization still sees
// the recording date.
func CopyFile(src, dest string, progress func(written, total uint64)) (written uint64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	total := uint64(info.Size())

	part := dest + partSuffix
	out, err := os.OpenFile(part, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(part)
		}
	}()

	pw := &progressWriter{w: out, total: total, fn: progress}
	// Hide in's WriterTo so the copy runs in bufferSize chunks.
	n, err := io.CopyBuffer(pw, struct{ io.Reader }{in}, make([]byte, bufferSize))
	if err != nil {
		return 0, err
	}
	if uint64(n) != total {
		return 0, fmt.Errorf("short copy of %s: %d of %d bytes", src, n, total)
	}
	if err = out.Sync(); err != nil {
		return 0, err
	}
	if err = out.Close(); err != nil {
		return 0, err
	}
	if err = os.Chtimes(part, info.ModTime(), info.ModTime()); err != nil {
		return 0, err
	}
	if err = os.Rename(part, dest); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

type progressWriter struct {
	w       io.Writer
	written uint64
	total   uint64
	fn      func(written, total uint64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += uint64(n)
	if p.fn != nil {
		p.fn(p.written, p.total)
	}
	return n, err
}

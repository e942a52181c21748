// Package concat runs the clip concatenation pipeline: resolve inputs, write
// the manifest, stream-copy through FFmpeg, then give the result its final
// dated name.
package concat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/vidkeep/internal/discovery"
	"github.com/five82/vidkeep/internal/ffmpeg"
	"github.com/five82/vidkeep/internal/logging"
	"github.com/five82/vidkeep/internal/manifest"
	"github.com/five82/vidkeep/internal/naming"
	"github.com/five82/vidkeep/internal/reporter"
	"github.com/five82/vidkeep/internal/util"
)

// Output naming.
const (
	IntermediateBase = "concat"
	OutputBase       = "output"
	OutputExt        = "mp4"
)

// ErrNoInputFiles is returned when the resolved input set is empty.
var ErrNoInputFiles = errors.New("no input files")

// Concatenator joins the files listed in a manifest into dest.
// *ffmpeg.Invoker satisfies it.
type Concatenator interface {
	Concat(ctx context.Context, manifestPath, dest string) error
}

// Selector picks input files interactively. An empty result means the user
// cancelled.
type Selector interface {
	Select(title string) ([]string, error)
}

// StaticSelector returns a fixed list, in order.
type StaticSelector []string

// Select implements Selector.
func (s StaticSelector) Select(string) ([]string, error) {
	return append([]string(nil), s...), nil
}

// Revealer opens a directory in the host's file browser.
type Revealer interface {
	Reveal(dir string) error
}

// Request describes a single run.
type Request struct {
	InputDir    string
	OutputDir   string
	SelectFiles bool // Ask the Selector instead of scanning InputDir
}

// Result describes a successful run.
type Result struct {
	OutputPath   string
	ManifestPath string
	Inputs       []string
}

// Pipeline holds the collaborators of a run. Only Concatenator is required.
type Pipeline struct {
	Concatenator Concatenator
	Selector     Selector
	Revealer     Revealer // nil skips the reveal step
	Extensions   []string // Scan filter, defaults to .mp4
	HWAccel      string   // Reported only; the Concatenator owns the flags
	Logger       *logging.Logger
	Reporter     reporter.Reporter
	Now          func() time.Time
}

// SelectTitle is the prompt passed to the Selector.
const SelectTitle = "Select videos to concatenate"

// Run concatenates the inputs of req into a new file in req.OutputDir.
//
// The process working directory is switched to req.InputDir for the run and
// restored on every exit path, including panics. Failures are logged and
// reported once before being returned: ErrNoInputFiles, the ffmpeg error
// types, or raw filesystem errors from the manifest write and final rename.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	rep := p.Reporter
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	exts := p.Extensions
	if len(exts) == 0 {
		exts = []string{"." + OutputExt}
	}
	startTime := time.Now()

	// Relative directories are resolved before the working directory moves.
	var err error
	if req.InputDir, err = filepath.Abs(req.InputDir); err == nil {
		req.OutputDir, err = filepath.Abs(req.OutputDir)
	}
	var wd *util.WorkDir
	if err == nil {
		wd, err = util.Chdir(req.InputDir)
	}
	if err != nil {
		p.Logger.Error("Cannot enter input directory %s: %v", req.InputDir, err)
		rep.Error(reporter.ReporterError{
			Title:      "Input Directory Error",
			Message:    err.Error(),
			Context:    fmt.Sprintf("Input: %s", req.InputDir),
			Suggestion: "Check the input directory in settings",
		})
		return nil, err
	}
	defer func() {
		if rerr := wd.Restore(); rerr != nil {
			p.Logger.Error("Failed to restore working directory %s: %v", wd.Previous(), rerr)
		}
	}()
	p.Logger.Debug("Working directory %s (was %s)", req.InputDir, wd.Previous())

	intermediate := naming.UniquePath(req.OutputDir, IntermediateBase, OutputExt, now())
	final := naming.UniquePath(req.OutputDir, OutputBase, OutputExt, now())
	p.Logger.Debug("Allocated %s and %s", intermediate, final)

	inputs, err := p.resolveInputs(req, exts)
	if err != nil {
		p.Logger.Error("Input resolution failed in %s: %v", req.InputDir, err)
		rep.Error(reporter.ReporterError{
			Title:   "Input Error",
			Message: err.Error(),
			Context: fmt.Sprintf("Input: %s", req.InputDir),
		})
		return nil, err
	}
	if len(inputs) == 0 {
		p.Logger.Error("No input files found in %s", req.InputDir)
		rep.Error(reporter.ReporterError{
			Title:      "No Input Files",
			Message:    "No video files to concatenate",
			Context:    fmt.Sprintf("Input: %s", req.InputDir),
			Suggestion: "Add .mp4 files to the input directory or select files explicitly",
		})
		return nil, ErrNoInputFiles
	}

	inputSize := util.TotalSize(inputs)
	rep.ConcatStarted(reporter.ConcatStartInfo{
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		Files:     inputs,
		HWAccel:   p.HWAccel,
	})
	if !util.CheckDiskSpace(req.OutputDir, inputSize, p.Logger.Warn) {
		rep.Warning(fmt.Sprintf("Low disk space in %s (%s of input)", req.OutputDir, util.FormatBytesReadable(inputSize)))
	}

	manifestPath, err := manifest.Write(req.OutputDir, inputs)
	if err != nil {
		p.Logger.Error("Failed to write manifest in %s: %v", req.OutputDir, err)
		rep.Error(reporter.ReporterError{
			Title:   "Manifest Error",
			Message: err.Error(),
			Context: fmt.Sprintf("Output: %s", req.OutputDir),
		})
		return nil, err
	}
	p.Logger.Info("Wrote manifest %s (%d entries)", manifestPath, len(inputs))
	p.echoManifest(manifestPath, rep)
	rep.StageProgress(reporter.StageProgress{Stage: "concat", Message: fmt.Sprintf("Joining %d files", len(inputs))})

	if err := p.Concatenator.Concat(ctx, manifestPath, intermediate); err != nil {
		p.Logger.Error("Concatenation failed (input %s, output %s): %v", req.InputDir, req.OutputDir, err)
		rep.Error(concatReport(err, req))
		return nil, err
	}

	if _, err := os.Lstat(final); err == nil {
		final = naming.UniquePath(req.OutputDir, OutputBase, OutputExt, now())
		p.Logger.Warn("Output name taken, using %s", final)
	}
	if err := os.Rename(intermediate, final); err != nil {
		p.Logger.Error("Failed to rename %s to %s: %v", intermediate, final, err)
		rep.Error(reporter.ReporterError{
			Title:   "Rename Failed",
			Message: err.Error(),
			Context: fmt.Sprintf("Output: %s", req.OutputDir),
		})
		return nil, err
	}
	p.Logger.Info("Concatenated %d files into %s", len(inputs), final)

	outputSize, _ := util.GetFileSize(final)
	rep.ConcatComplete(reporter.ConcatOutcome{
		OutputPath:   final,
		ManifestPath: manifestPath,
		InputCount:   len(inputs),
		InputSize:    inputSize,
		OutputSize:   outputSize,
		TotalTime:    time.Since(startTime),
	})

	if p.Revealer != nil {
		if err := p.Revealer.Reveal(req.OutputDir); err != nil {
			p.Logger.Warn("Could not open %s: %v", req.OutputDir, err)
		}
	}

	return &Result{OutputPath: final, ManifestPath: manifestPath, Inputs: inputs}, nil
}

// echoManifest logs what was actually written, read back from disk.
func (p *Pipeline) echoManifest(path string, rep reporter.Reporter) {
	entries, err := manifest.Read(path)
	if err != nil {
		p.Logger.Warn("Could not read back %s: %v", path, err)
		return
	}
	p.Logger.Debug("Contents of %s:", path)
	for _, e := range entries {
		line := manifest.Line(e)
		p.Logger.Debug("  %s", line)
		rep.Verbose(line)
	}
}

func (p *Pipeline) resolveInputs(req Request, exts []string) ([]string, error) {
	if req.SelectFiles {
		if p.Selector == nil {
			return nil, errors.New("file selection requested but no selector is configured")
		}
		files, err := p.Selector.Select(SelectTitle)
		if err != nil {
			return nil, err
		}
		abs := make([]string, 0, len(files))
		for _, f := range files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(req.InputDir, f)
			}
			abs = append(abs, f)
		}
		return abs, nil
	}
	return discovery.FindVideoFiles(req.InputDir, exts)
}

func concatReport(err error, req Request) reporter.ReporterError {
	where := fmt.Sprintf("Input: %s, Output: %s", req.InputDir, req.OutputDir)

	var failed *ffmpeg.ConcatenationFailedError
	if errors.As(err, &failed) {
		return reporter.ReporterError{
			Title:      "Concatenation Failed",
			Message:    failed.Diagnostic,
			Context:    where,
			Suggestion: "Check that all inputs share the same codecs and resolution",
		}
	}
	var unexpected *ffmpeg.UnexpectedConcatenationError
	if errors.As(err, &unexpected) {
		return reporter.ReporterError{
			Title:      "Unexpected Concatenation Error",
			Message:    unexpected.Error(),
			Context:    where,
			Suggestion: "Check that FFmpeg is installed and on PATH",
		}
	}
	return reporter.ReporterError{Title: "Concatenation Error", Message: err.Error(), Context: where}
}

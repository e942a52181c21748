package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/five82/vidkeep/internal/util"
)

// LogReporter writes events to a log file.
type LogReporter struct {
	w                  io.Writer
	mu                 sync.Mutex
	lastProgressBucket int // Track per-file byte progress in 25% buckets
}

// NewLogReporter creates a new log reporter that writes to the given writer.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{
		w:                  w,
		lastProgressBucket: -1,
	}
}

func (r *LogReporter) log(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(r.w, "%s [%s] %s\n", timestamp, level, msg)
}

func (r *LogReporter) StageProgress(update StageProgress) {
	r.log("INFO", "[%s] %s", strings.ToUpper(update.Stage), update.Message)
}

func (r *LogReporter) ConcatStarted(info ConcatStartInfo) {
	r.log("INFO", "=== CONCAT ===")
	r.log("INFO", "Input directory: %s", info.InputDir)
	r.log("INFO", "Output directory: %s", info.OutputDir)
	if info.HWAccel != "" {
		r.log("INFO", "Hardware decode: %s (software fallback enabled)", info.HWAccel)
	}
	for i, f := range info.Files {
		r.log("INFO", "  %d. %s", i+1, f)
	}
}

func (r *LogReporter) ConcatComplete(outcome ConcatOutcome) {
	r.log("INFO", "=== RESULTS ===")
	r.log("INFO", "Output: %s", outcome.OutputPath)
	r.log("INFO", "Manifest: %s", outcome.ManifestPath)
	r.log("INFO", "Inputs: %d (%s)", outcome.InputCount, util.FormatBytesReadable(outcome.InputSize))
	r.log("INFO", "Size: %s", util.FormatBytesReadable(outcome.OutputSize))
	r.log("INFO", "Time: %s", util.FormatDurationFromSecs(int64(outcome.TotalTime.Seconds())))
}

func (r *LogReporter) TransferStarted(info TransferStartInfo) {
	r.log("INFO", "=== TRANSFER STARTED ===")
	r.log("INFO", "Moving %d files (%s): %s -> %s",
		info.TotalFiles, util.FormatBytesReadable(info.TotalBytes), info.SourceDir, info.DestDir)
}

func (r *LogReporter) FileStarted(context FileProgressContext) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.mu.Unlock()
	r.log("INFO", "--- File %d of %d: %s (%s) ---",
		context.CurrentFile, context.TotalFiles, context.Name, util.FormatBytesReadable(context.Size))
}

func (r *LogReporter) FileBytes(written, total uint64) {
	if total == 0 {
		return
	}
	bucket := int(written * 4 / total)
	r.mu.Lock()
	if bucket > r.lastProgressBucket && bucket <= 4 {
		r.lastProgressBucket = bucket
		r.mu.Unlock()
		r.log("DEBUG", "Copied %d%% (%s of %s)", bucket*25,
			util.FormatBytesReadable(written), util.FormatBytesReadable(total))
	} else {
		r.mu.Unlock()
	}
}

func (r *LogReporter) FileComplete(outcome FileOutcome) {
	if outcome.Skipped {
		r.log("WARN", "Skipped %s: %s", outcome.Name, outcome.Reason)
		return
	}
	r.log("INFO", "Moved %s to %s", outcome.Name, outcome.Destination)
}

func (r *LogReporter) TransferComplete(summary TransferSummary) {
	r.log("INFO", "=== TRANSFER COMPLETE ===")
	r.log("INFO", "%d moved, %d skipped, %d failed (%s)",
		summary.Moved, summary.Skipped, summary.Failed, util.FormatBytesReadable(summary.Bytes))
	if summary.OriginalsDeleted {
		r.log("INFO", "Originals deleted from the source directory")
	} else {
		r.log("INFO", "Originals kept in the source directory")
	}
	r.log("INFO", "Time: %s", util.FormatDurationFromSecs(int64(summary.Duration.Seconds())))
}

func (r *LogReporter) OrganizeComplete(summary OrganizeSummary) {
	r.log("INFO", "=== ORGANIZE COMPLETE === %s", summary.Dir)
	r.log("INFO", "%d moved, %d skipped, %d folders renamed", summary.Moved, summary.Skipped, summary.RenamedDirs)
}

func (r *LogReporter) Warning(message string) {
	r.log("WARN", "%s", message)
}

func (r *LogReporter) Error(err ReporterError) {
	r.log("ERROR", "%s: %s", err.Title, err.Message)
	if err.Context != "" {
		r.log("ERROR", "  Context: %s", err.Context)
	}
	if err.Suggestion != "" {
		r.log("ERROR", "  Suggestion: %s", err.Suggestion)
	}
}

func (r *LogReporter) OperationComplete(message string) {
	r.log("INFO", "=== COMPLETE === %s", message)
}

func (r *LogReporter) Verbose(message string) {
	r.log("DEBUG", "%s", message)
}

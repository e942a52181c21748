package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/five82/vidkeep/internal/util"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	progress  *progressbar.ProgressBar
	lastStage string
	verbose   bool
	cyan      *color.Color
	green     *color.Color
	yellow    *color.Color
	red       *color.Color
	magenta   *color.Color
	bold      *color.Color
	dim       *color.Color
}

// NewTerminalReporter creates a new terminal reporter with verbose mode disabled.
func NewTerminalReporter() *TerminalReporter {
	return NewTerminalReporterVerbose(false)
}

// NewTerminalReporterVerbose creates a new terminal reporter with configurable verbose mode.
func NewTerminalReporterVerbose(verbose bool) *TerminalReporter {
	return newTerminalReporter(os.Stdout, os.Stderr, verbose)
}

func newTerminalReporter(out, errOut io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		dim:     color.New(color.Faint),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

// labelWidth is the global width for all labels to ensure consistent alignment.
const labelWidth = 12

// printLabel prints a bold label with fixed width padding followed by a value.
func (r *TerminalReporter) printLabel(label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", labelWidth, label)
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) heading(title string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, title)
}

// enterStage prints the heading for stage unless it is already the current one.
func (r *TerminalReporter) enterStage(stage string) {
	r.mu.Lock()
	same := r.lastStage == stage
	r.lastStage = stage
	r.mu.Unlock()
	if !same {
		r.heading(strings.ToUpper(stage))
	}
}

// resetStage ends the current run so the next one prints its headings again.
func (r *TerminalReporter) resetStage() {
	r.mu.Lock()
	r.lastStage = ""
	r.mu.Unlock()
}

func (r *TerminalReporter) StageProgress(update StageProgress) {
	r.enterStage(update.Stage)
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.magenta.Sprint("›"), update.Message)
}

func (r *TerminalReporter) ConcatStarted(info ConcatStartInfo) {
	r.enterStage("concat")
	r.printLabel("Input:", info.InputDir)
	r.printLabel("Output:", info.OutputDir)
	if info.HWAccel != "" {
		r.printLabel("Decode:", fmt.Sprintf("%s (falls back to CPU)", info.HWAccel))
	}
	r.printLabel("Files:", fmt.Sprintf("%d", len(info.Files)))
	for i, f := range info.Files {
		_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.dim.Sprintf("%3d.", i+1), filepath.Base(f))
	}
}

func (r *TerminalReporter) ConcatComplete(outcome ConcatOutcome) {
	r.enterStage("results")
	r.printLabel("Inputs:", fmt.Sprintf("%d (%s)", outcome.InputCount, util.FormatBytesReadable(outcome.InputSize)))
	r.printLabel("Size:", util.FormatBytesReadable(outcome.OutputSize))
	r.printLabel("Time:", util.FormatDurationFromSecs(int64(outcome.TotalTime.Seconds())))
	r.printLabel("Manifest:", outcome.ManifestPath)
	r.printLabel("Saved to:", r.green.Sprint(outcome.OutputPath))
	r.resetStage()
}

func (r *TerminalReporter) TransferStarted(info TransferStartInfo) {
	r.enterStage("transfer")
	_, _ = fmt.Fprintf(r.out, "  Moving %d files (%s) -> %s\n",
		info.TotalFiles, util.FormatBytesReadable(info.TotalBytes), r.bold.Sprint(info.DestDir))
}

func (r *TerminalReporter) FileStarted(context FileProgressContext) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		int64(context.Size),
		progressbar.OptionSetDescription(fmt.Sprintf("[%d/%d] %s", context.CurrentFile, context.TotalFiles, context.Name)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileBytes(written, _ uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}
	_ = r.progress.Set64(int64(written))
}

func (r *TerminalReporter) FileComplete(outcome FileOutcome) {
	r.finishProgress()

	if outcome.Skipped {
		_, _ = fmt.Fprintf(r.out, "  %s %s (%s)\n", r.yellow.Sprint("-"), outcome.Name, outcome.Reason)
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s -> %s\n", r.green.Sprint("✓"), outcome.Name, filepath.Dir(outcome.Destination))
}

func (r *TerminalReporter) TransferComplete(summary TransferSummary) {
	r.finishProgress()

	r.enterStage("transfer summary")
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.bold.Sprintf("%d moved, %d skipped, %d failed", summary.Moved, summary.Skipped, summary.Failed))
	r.printLabel("Size:", util.FormatBytesReadable(summary.Bytes))
	r.printLabel("Time:", util.FormatDurationFromSecs(int64(summary.Duration.Seconds())))
	if summary.OriginalsDeleted {
		r.printLabel("Source:", "originals deleted")
	} else {
		r.printLabel("Source:", "originals kept")
	}
	r.resetStage()
}

func (r *TerminalReporter) OrganizeComplete(summary OrganizeSummary) {
	r.enterStage("organize")
	r.printLabel("Folder:", summary.Dir)
	r.printLabel("Moved:", fmt.Sprintf("%d", summary.Moved))
	r.printLabel("Skipped:", fmt.Sprintf("%d", summary.Skipped))
	if summary.RenamedDirs > 0 {
		r.printLabel("Renamed:", fmt.Sprintf("%d date folders", summary.RenamedDirs))
	}
	r.resetStage()
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.yellow.Fprintf(r.out, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()
	r.resetStage()

	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.red.Fprintf(r.errOut, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.errOut, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgGreen, color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.dim.Sprint("›"), r.dim.Sprint(message))
}

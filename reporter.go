// This file re-exports the internal Reporter interface, its event types and
// the pipeline errors so callers can receive every event directly.

package vidkeep

import (
	"github.com/five82/vidkeep/internal/concat"
	"github.com/five82/vidkeep/internal/ffmpeg"
	"github.com/five82/vidkeep/internal/reporter"
)

// Reporter defines the interface for progress reporting.
type Reporter = reporter.Reporter

// NullReporter is a no-op reporter that discards all updates.
type NullReporter = reporter.NullReporter

// StageProgress represents a generic stage update.
type StageProgress = reporter.StageProgress

// ConcatStartInfo describes a concatenation before FFmpeg runs.
type ConcatStartInfo = reporter.ConcatStartInfo

// ConcatOutcome contains the result of a concatenation.
type ConcatOutcome = reporter.ConcatOutcome

// TransferStartInfo contains transfer start metadata.
type TransferStartInfo = reporter.TransferStartInfo

// FileProgressContext contains the current file index within a transfer.
type FileProgressContext = reporter.FileProgressContext

// FileOutcome describes one transferred file.
type FileOutcome = reporter.FileOutcome

// TransferSummary contains transfer completion information.
type TransferSummary = reporter.TransferSummary

// OrganizeSummary contains date organization results.
type OrganizeSummary = reporter.OrganizeSummary

// ReporterError contains error information.
type ReporterError = reporter.ReporterError

// Selector picks concat inputs interactively. An empty result means cancelled.
type Selector = concat.Selector

// ErrNoInputFiles is returned when a concatenation has nothing to join.
var ErrNoInputFiles = concat.ErrNoInputFiles

// ConcatenationFailedError means FFmpeg ran and reported failure.
type ConcatenationFailedError = ffmpeg.ConcatenationFailedError

// UnexpectedConcatenationError wraps any other failure of the FFmpeg step.
type UnexpectedConcatenationError = ffmpeg.UnexpectedConcatenationError

package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// genericFailure is reported when FFmpeg fails without writing a diagnostic.
const genericFailure = "ffmpeg exited with an error and produced no diagnostic output"

// ConcatenationFailedError means FFmpeg ran and reported failure.
// Diagnostic holds its stderr verbatim, or a generic message when empty.
type ConcatenationFailedError struct {
	Diagnostic string
	Err        error
}

func (e *ConcatenationFailedError) Error() string {
	return fmt.Sprintf("concatenation failed: %s", strings.TrimSpace(e.Diagnostic))
}

func (e *ConcatenationFailedError) Unwrap() error { return e.Err }

// UnexpectedConcatenationError wraps any other failure of the invocation
// step, such as a missing binary or a runner panic.
type UnexpectedConcatenationError struct {
	Err error
}

func (e *UnexpectedConcatenationError) Error() string {
	return fmt.Sprintf("unexpected error during concatenation: %v", e.Err)
}

func (e *UnexpectedConcatenationError) Unwrap() error { return e.Err }

// Pre-compiled regex classifying FFmpeg stderr as "hardware acceleration
// unavailable". Only this category triggers the software fallback.
var reHWAccelUnsupported = regexp.MustCompile(
	`(?i)Unknown hwaccel|` +
		`Unrecognized hwaccel|` +
		`Device creation failed|` +
		`Failed to set value '[^']*' for option 'hwaccel|` +
		`No device available for decoder|` +
		`Cannot load (libcuda|libnvcuvid|nvcuda)|` +
		`CUDA_ERROR_|` +
		`hwaccel initialisation returned error|` +
		`Hardware device setup failed`)

// MatchHWAccelUnsupported reports whether stderr indicates the requested
// hardware acceleration cannot be used on this host.
func MatchHWAccelUnsupported(stderr string) bool {
	return reHWAccelUnsupported.MatchString(stderr)
}

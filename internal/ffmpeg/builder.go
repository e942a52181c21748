// Package ffmpeg builds and runs the FFmpeg concat-demuxer invocation.
package ffmpeg

// DefaultBinary is the FFmpeg executable looked up on PATH.
const DefaultBinary = "ffmpeg"

// ConcatOptions describes a single concat invocation.
type ConcatOptions struct {
	Manifest string // Path to the concat manifest
	Output   string // Destination file; must not exist
	HWAccel  string // Hardware decode API (e.g. "cuda"), empty for software
}

// ConcatArgs maps opts to the FFmpeg argument list (without the binary name).
//
// Streams are copied, never re-encoded. Timestamps are regenerated and
// shifted so that discontinuities between segments cannot produce negative
// or non-monotonic output timestamps. -n makes FFmpeg refuse to overwrite an
// existing destination.
func ConcatArgs(opts ConcatOptions) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-n")

	// --- Hardware decode hint (input option, must precede -i) ---
	if opts.HWAccel != "" {
		args = append(args,
			"-hwaccel", opts.HWAccel,
			"-hwaccel_output_format", opts.HWAccel,
		)
	}

	// --- Input ---
	args = append(args,
		"-fflags", "+genpts",
		"-f", "concat",
		"-safe", "0",
		"-i", opts.Manifest,
	)

	// --- Stream copy ---
	args = append(args, "-c:v", "copy", "-c:a", "copy")

	// --- Timestamp normalization ---
	args = append(args,
		"-reset_timestamps", "1",
		"-avoid_negative_ts", "make_non_negative",
	)

	// --- Output ---
	args = append(args, opts.Output)

	return args
}

package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/five82/vidkeep/internal/logging"
)

// exitCoder is satisfied by *exec.ExitError and by test fakes.
type exitCoder interface {
	ExitCode() int
}

// Invoker runs concat invocations with a software fallback for hardware decode.
type Invoker struct {
	Binary  string               // FFmpeg binary, DefaultBinary when empty
	HWAccel string               // Hardware decode API to attempt; empty disables
	Runner  Runner               // Process runner, ExecRunner when nil
	Logger  *logging.Logger      // May be nil
	Trace   func(command string) // Sees each command line before it runs; may be nil
}

// Concat stream-copies every file listed in manifestPath, in order, into dest.
//
// Errors are *ConcatenationFailedError when FFmpeg reports failure and
// *UnexpectedConcatenationError for anything else. A partially written dest
// is removed on failure. There is no retry except the single software
// fallback when the hardware decode hint is rejected.
func (inv *Invoker) Concat(ctx context.Context, manifestPath, dest string) error {
	opts := ConcatOptions{
		Manifest: manifestPath,
		Output:   dest,
		HWAccel:  inv.HWAccel,
	}

	_, statErr := os.Lstat(dest)
	preexisting := statErr == nil

	stderr, err := inv.run(ctx, opts)
	if err != nil && opts.HWAccel != "" && isExit(err) && MatchHWAccelUnsupported(stderr) {
		inv.Logger.Warn("%s acceleration not available, falling back to CPU", opts.HWAccel)
		if !preexisting {
			_ = os.Remove(dest)
		}
		opts.HWAccel = ""
		stderr, err = inv.run(ctx, opts)
	}
	if err == nil {
		return nil
	}

	if !preexisting {
		_ = os.Remove(dest)
	}

	if isExit(err) {
		diag := strings.TrimSpace(stderr)
		if diag == "" {
			diag = genericFailure
		}
		inv.Logger.Error("Error running FFmpeg concat: %s", diag)
		return &ConcatenationFailedError{Diagnostic: diag, Err: err}
	}

	inv.Logger.Error("Unexpected error during concatenation: %v", err)
	return &UnexpectedConcatenationError{Err: err}
}

// run performs a single invocation. A panic inside the runner is converted
// into an error so callers see a single failure path.
func (inv *Invoker) run(ctx context.Context, opts ConcatOptions) (stderr string, err error) {
	binary := inv.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	runner := inv.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	args := ConcatArgs(opts)
	command := binary + " " + strings.Join(args, " ")
	inv.Logger.Info("Constructed FFmpeg concat command: %s", command)
	if inv.Trace != nil {
		inv.Trace(command)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ffmpeg runner panicked: %v", r)
		}
	}()

	stderr, err = runner.Run(ctx, binary, args)
	if stderr != "" {
		inv.Logger.Debug("FFmpeg stderr:\n%s", stderr)
	}
	return stderr, err
}

func isExit(err error) bool {
	var ec exitCoder
	return errors.As(err, &ec)
}

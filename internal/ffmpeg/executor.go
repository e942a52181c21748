package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner runs an external program to completion and returns everything it
// wrote to stderr. A non-nil error of type *exec.ExitError means the program
// ran and reported failure; any other error means it could not be run.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (stderr string, err error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	// Tee, when set, also receives stderr in real time (e.g. os.Stderr in verbose mode).
	Tee io.Writer
}

// Run executes name with args and captures stderr.
func (r ExecRunner) Run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	if r.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, r.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}
	cmd.Stdout = io.Discard

	err := cmd.Run()
	return stderrBuf.String(), err
}

// VerboseRunner returns an ExecRunner that mirrors stderr to the terminal.
func VerboseRunner() ExecRunner {
	return ExecRunner{Tee: os.Stderr}
}

// IsAvailable checks if the binary is available in PATH.
func IsAvailable(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

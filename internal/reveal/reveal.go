// Package reveal opens a directory in the host's file browser.
package reveal

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// CommandFunc starts name with args and waits for it to exit.
type CommandFunc func(name string, args ...string) error

// Opener reveals directories using the platform's open-folder command.
type Opener struct {
	GOOS    string      // runtime.GOOS when empty
	Command CommandFunc // exec.Command(...).Run when nil
}

// Command returns the open-folder command for goos.
func Command(goos, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// Reveal opens dir. Errors are informational; callers treat a failed reveal
// as non-fatal.
func (o Opener) Reveal(dir string) error {
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	run := o.Command
	if run == nil {
		run = func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		}
	}

	name, args := Command(goos, dir)
	if err := run(name, args...); err != nil {
		// explorer.exe exits 1 even when the window opened.
		if goos == "windows" {
			var ee *exec.ExitError
			if errors.As(err, &ee) && ee.ExitCode() == 1 {
				return nil
			}
		}
		return fmt.Errorf("%s %s: %w", name, dir, err)
	}
	return nil
}

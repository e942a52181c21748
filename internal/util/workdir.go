package util

import (
	"fmt"
	"os"
)

// WorkDir is a scoped change of the process working directory.
// The directory in effect before Chdir is restored by Restore.
type WorkDir struct {
	prev     string
	restored bool
}

// Chdir records the current working directory and changes into dir.
// Callers must defer Restore immediately after a successful call.
func Chdir(dir string) (*WorkDir, error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, err
	}
	return &WorkDir{prev: prev}, nil
}

// Previous returns the directory that Restore returns to.
func (w *WorkDir) Previous() string {
	return w.prev
}

// Restore changes back to the recorded directory. It is safe to call more than once.
func (w *WorkDir) Restore() error {
	if w == nil || w.restored {
		return nil
	}
	w.restored = true
	return os.Chdir(w.prev)
}

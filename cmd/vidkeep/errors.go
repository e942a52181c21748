package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/five82/vidkeep/internal/reporter"
)

// reportedError marks a failure the reporter has already shown, so callers
// only derive the exit status from it.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported marks err as shown. A nil err stays nil.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// fail reports err through the session reporter and marks it as shown.
func (s *session) fail(title string, err error, suggestion string) error {
	s.rep.Error(reporter.ReporterError{
		Title:      title,
		Message:    err.Error(),
		Suggestion: suggestion,
	})
	return reported(err)
}

// printError writes err to w unless it has already been reported.
func printError(w io.Writer, err error) {
	if err == nil || isReported(err) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

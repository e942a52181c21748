package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/vidkeep"
	"github.com/five82/vidkeep/internal/config"
	"github.com/five82/vidkeep/internal/ffmpeg"
)

func TestPrintErrorSkipsReported(t *testing.T) {
	cause := &ffmpeg.ConcatenationFailedError{Diagnostic: "vidlist.txt: Invalid data found"}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("input directory is required"), "Error: input directory is required\n"},
		{"reported", reported(cause), ""},
		{"wrapped reported", fmt.Errorf("menu: %w", reported(cause)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			if buf.String() != tt.want {
				t.Errorf("printed %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReportedKeepsCause(t *testing.T) {
	cause := &ffmpeg.ConcatenationFailedError{Diagnostic: "bad"}
	err := reported(cause)

	var failed *ffmpeg.ConcatenationFailedError
	if !errors.As(err, &failed) || failed != cause {
		t.Errorf("errors.As lost the cause: %v", err)
	}
	if reported(nil) != nil {
		t.Error("reported(nil) should stay nil")
	}
}

func TestConcatWithMissingFFmpegReportsOnce(t *testing.T) {
	cfg := config.NewConfig(t.TempDir(), t.TempDir(), "")
	cfg.FFmpegPath = "ffmpeg-definitely-missing"
	rep := &errorRecorder{}
	s := &session{cfg: cfg, rep: rep}

	err := concatWith(s, vidkeep.ConcatRequest{InputDir: cfg.InputDir, OutputDir: cfg.OutputDir})
	if err == nil || !isReported(err) {
		t.Fatalf("err = %v, want a reported error", err)
	}
	if len(rep.errors) != 1 {
		t.Errorf("reported %d errors, want 1", len(rep.errors))
	}
}

func TestConcatWithPipelineFailureReportsOnce(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Skip(err)
	}
	cfg := config.NewConfig(filepath.Join(t.TempDir(), "gone"), t.TempDir(), "")
	cfg.FFmpegPath = self
	rep := &errorRecorder{}
	s := &session{cfg: cfg, rep: rep}

	err = concatWith(s, vidkeep.ConcatRequest{InputDir: cfg.InputDir, OutputDir: cfg.OutputDir}, vidkeep.WithoutReveal())
	if !isReported(err) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want a reported ErrNotExist", err)
	}
	if len(rep.errors) != 1 || rep.errors[0].Title != "Input Directory Error" {
		t.Errorf("reported errors = %+v", rep.errors)
	}

	var buf bytes.Buffer
	printError(&buf, err)
	if buf.Len() != 0 {
		t.Errorf("reported failure printed again: %q", buf.String())
	}
}

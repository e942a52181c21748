// Package logging provides file logging for vidkeep.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultLogDir returns the default log directory following XDG Base Directory Spec.
// Uses $XDG_STATE_HOME/vidkeep/logs, defaulting to ~/.local/state/vidkeep/logs.
func DefaultLogDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "vidkeep", "logs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return filepath.Join(".", "vidkeep", "logs")
	}
	return filepath.Join(home, ".local", "state", "vidkeep", "logs")
}

// FileNameFor returns the daily log file name for t (MM-DD-YYYY-log.log).
func FileNameFor(t time.Time) string {
	return t.Format("01-02-2006") + "-log.log"
}

// level represents the logging level.
type level int

const (
	levelInfo level = iota
	levelDebug
)

// Logger wraps the standard logger with level filtering and file output.
// A nil *Logger discards everything.
type Logger struct {
	mu       sync.Mutex
	level    level
	logger   *log.Logger
	file     *os.File
	filePath string
}

// Setup opens (or appends to) today's log file in logDir.
// Returns nil if logging is disabled (noLog=true).
// cmdArgs should be os.Args to log the command that was run.
func Setup(logDir string, verbose, noLog bool, cmdArgs []string) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	filePath := filepath.Join(logDir, FileNameFor(time.Now()))

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	l := New(file, verbose)
	l.file = file
	l.filePath = filePath

	l.Info("Command: %s", strings.Join(cmdArgs, " "))
	if verbose {
		l.Info("Debug level logging enabled")
	}
	l.Info("Log file: %s", filePath)

	return l, nil
}

// New creates a logger writing to w. Useful for tests and for callers that
// manage their own output.
func New(w io.Writer, verbose bool) *Logger {
	lvl := levelInfo
	if verbose {
		lvl = levelDebug
	}
	return &Logger{
		level:  lvl,
		logger: log.New(w, "", 0), // No flags - we add timestamps manually for consistent format
	}
}

// Path returns the log file path, or "" when not file-backed.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) write(tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("%s [%s] "+format, append([]any{timestamp, tag}, args...)...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.write("INFO", format, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.write("WARN", format, args...)
}

// Error logs an error.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.write("ERROR", format, args...)
}

// Debug logs a debug-level message (only if verbose mode is enabled).
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || l.level < levelDebug {
		return
	}
	l.write("DEBUG", format, args...)
}

// Writer returns an io.Writer that writes to the log file.
// Useful for redirecting other loggers or capturing output.
func (l *Logger) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}

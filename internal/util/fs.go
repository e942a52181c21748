// Package util provides utility functions for file operations.
package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// MinFreeSpaceMB is the minimum free space recommended before writing output (in MB).
const MinFreeSpaceMB = 500

// FileExists reports whether path exists (file or directory).
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory reports whether path exists and is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureDirectory creates a directory (and parents) if it does not exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureDirectoryWritable checks if a directory exists and is writable.
func EnsureDirectoryWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	// Check if directory is writable by attempting to create a test file
	testPath := filepath.Join(path, ".vidkeep_write_test")
	f, err := os.Create(testPath)
	if err != nil {
		return fmt.Errorf("directory is not writable: %s", path)
	}
	_ = f.Close()
	_ = os.Remove(testPath)

	return nil
}

// CheckDiskSpace checks if there is sufficient disk space and logs a warning if low.
// Returns true if space is sufficient or cannot be determined.
func CheckDiskSpace(path string, needBytes uint64, logger func(format string, args ...any)) bool {
	available := GetAvailableSpace(path)
	if available == 0 {
		return true // Cannot determine, assume OK
	}

	minBytes := uint64(MinFreeSpaceMB) * 1024 * 1024
	if needBytes > minBytes {
		minBytes = needBytes
	}
	if available < minBytes {
		if logger != nil {
			logger("Low disk space in %s: %s available (needed: %s)",
				path, FormatBytesReadable(available), FormatBytesReadable(minBytes))
		}
		return false
	}
	return true
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// TotalSize returns the combined size of the given files, ignoring files that cannot be read.
func TotalSize(paths []string) uint64 {
	var total uint64
	for _, p := range paths {
		if size, err := GetFileSize(p); err == nil {
			total += size
		}
	}
	return total
}

// FormatBytesReadable formats a byte count using binary units.
func FormatBytesReadable(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDurationFromSecs formats seconds as HH:MM:SS.
func FormatDurationFromSecs(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// Package discovery provides file discovery for video processing.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultVideoExtensions is the extension set used for general directory scans.
var DefaultVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv"}

// HasExtension reports whether path has one of exts, compared case-insensitively.
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// NormalizeExtensions lower-cases exts and adds a leading dot where missing.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// FindVideoFiles finds files in inputDir whose extension is in exts.
// The scan is not recursive. Hidden files are skipped. Results are absolute
// paths in directory-listing order (os.ReadDir order). An empty result is not
// an error.
func FindVideoFiles(inputDir string, exts []string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", inputDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", inputDir)
	}

	absDir, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve directory %s: %w", inputDir, err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", inputDir, err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files (including macOS "._" resource forks)
		if strings.HasPrefix(name, ".") {
			continue
		}

		if HasExtension(name, exts) {
			files = append(files, filepath.Join(absDir, name))
		}
	}

	return files, nil
}

// Package manifest writes the ordered file list consumed by FFmpeg's concat demuxer.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the manifest written into the output directory.
const FileName = "vidlist.txt"

// Line formats a single manifest entry for path, without the trailing newline.
// A single quote inside path is closed, escaped and reopened ('\'') as the
// concat demuxer expects.
func Line(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// Write creates (or truncates) outputDir/vidlist.txt with one entry per file,
// in the order given. It returns the manifest path. Filesystem errors are
// returned as-is.
func Write(outputDir string, files []string) (path string, err error) {
	path = filepath.Join(outputDir, FileName)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var b strings.Builder
	for _, p := range files {
		b.WriteString(Line(p))
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return "", err
	}

	return path, nil
}

// Read parses a manifest back into its paths. Lines that are not file
// directives are ignored.
func Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "file '") || !strings.HasSuffix(line, "'") {
			continue
		}
		quoted := strings.TrimSuffix(strings.TrimPrefix(line, "file '"), "'")
		files = append(files, strings.ReplaceAll(quoted, `'\''`, "'"))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no file entries in %s", path)
	}
	return files, nil
}

// Package naming allocates dated, collision-free output filenames.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the date used in generated names (MM-DD-YYYY).
const DateLayout = "01-02-2006"

// Unique returns a filename of the form <base>_<MM-DD-YYYY>.<ext> that does
// not exist in dir, appending _1, _2, ... until free. The date is now in local
// time. The check-then-use is not safe against concurrent allocators
// targeting the same directory.
func Unique(dir, base, ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	date := now.Local().Format(DateLayout)

	name := fmt.Sprintf("%s_%s.%s", base, date, ext)
	for n := 1; exists(filepath.Join(dir, name)); n++ {
		name = fmt.Sprintf("%s_%s_%d.%s", base, date, n, ext)
	}
	return name
}

// UniquePath is Unique joined with dir.
func UniquePath(dir, base, ext string, now time.Time) string {
	return filepath.Join(dir, Unique(dir, base, ext, now))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

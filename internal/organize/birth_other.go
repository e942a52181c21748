//go:build !linux && !darwin

package organize

import "time"

func birthTime(string) (time.Time, bool) {
	return time.Time{}, false
}

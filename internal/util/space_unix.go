//go:build unix

package util

import "golang.org/x/sys/unix"

// GetAvailableSpace returns the available disk space in bytes for the given path.
// It returns 0 when the filesystem cannot be queried.
func GetAvailableSpace(path string) uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}

//go:build !unix

package util

// GetAvailableSpace always reports 0 (unknown) on this platform.
func GetAvailableSpace(string) uint64 {
	return 0
}

//go:build !linux

package fs

import "os"

// Without statfs magic numbers to go by, anything that can be stat'ed counts as local
func isLocalFileSystem(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, err
	}
	return true, nil
}

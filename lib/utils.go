package lib

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const fileScheme = "file"

// ErrNotFileURI is returned for a URI whose scheme isn't "file"
var ErrNotFileURI = errors.New("not a file:// URI")

// IsReadableDirectory checks whether a readable directory exists at given path
func IsReadableDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// PathFromLocation turns what a file manager hands over (a plain path or a URI such as
// "file:///home/me/My%20Docs/a.pdf") into an absolute local path
func PathFromLocation(location string) (string, error) {
	if !strings.Contains(location, "://") {
		return filepath.Abs(location)
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("couldn't parse location \"%s\": %w", location, err)
	}
	if u.Scheme != fileScheme {
		return "", fmt.Errorf("%w: \"%s\"", ErrNotFileURI, location)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("%w: \"%s\" is on host %s", ErrNotFileURI, location, u.Host)
	}
	// u.Path is already percent-decoded
	return filepath.Clean(u.Path), nil
}

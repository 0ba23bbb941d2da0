package fs

import (
	"io/fs"
	"time"
)

// FileSystem abstracts the file system operations the column provider needs, so that
// tests can substitute what is local and what isn't
type FileSystem interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (FileInfo, error)

	// ReadDir lists the immediate entries of dirPath, sorted by name. It doesn't recurse.
	ReadDir(dirPath string) ([]DirEntry, error)

	// IsLocal reports whether path is backed by a local (non-network) file system.
	IsLocal(path string) (bool, error)
}

// FileInfo holds the subset of os.FileInfo fields we need.
type FileInfo struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// IsRegular reports whether the info describes a regular file
func (f FileInfo) IsRegular() bool {
	return f.Mode.IsRegular()
}

// DirEntry represents a single entry of a directory listing.
type DirEntry struct {
	// Path is the absolute path of the entry.
	Path string
	// Name is the base name of the entry.
	Name string
	// IsDir is true for directory entries.
	IsDir bool
	// IsRegular is true for regular files (symlinks aren't followed).
	IsRegular bool
}

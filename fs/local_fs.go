package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-manu/digipres-columns/fmte"
)

// LocalFS implements FileSystem using standard os.* calls.
type LocalFS struct{}

// NewLocalFS returns a new LocalFS.
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func (l *LocalFS) ReadDir(dirPath string) ([]DirEntry, error) {
	osEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't list directory %s: %w", dirPath, err)
	}
	entries := make([]DirEntry, 0, len(osEntries))
	for _, e := range osEntries {
		// Ignore AppleDouble files (Mac)
		if strings.HasPrefix(e.Name(), "._") {
			fmte.PrintfErrV("skipping \"%s\"\n", e.Name())
			continue
		}
		entries = append(entries, DirEntry{
			Path:      filepath.Join(dirPath, e.Name()),
			Name:      e.Name(),
			IsDir:     e.IsDir(),
			IsRegular: e.Type().IsRegular(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (l *LocalFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfoFromOS(info), nil
}

func (l *LocalFS) IsLocal(path string) (bool, error) {
	return isLocalFileSystem(path)
}

func fileInfoFromOS(info os.FileInfo) FileInfo {
	return FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}

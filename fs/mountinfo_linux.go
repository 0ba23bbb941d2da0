//go:build linux

package fs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	set "github.com/deckarep/golang-set/v2"

	"github.com/m-manu/digipres-columns/fmte"
)

// FUSE subtypes backed by a network or cloud service
var remoteFuseSubtypes = set.NewSet("sshfs", "rclone", "s3fs", "gcsfuse", "davfs", "curlftpfs",
	"smbnetfs", "goofys", "blobfuse", "blobfuse2", "glusterfs", "cephfs")

type mountEntry struct {
	mountPoint string
	fsType     string
	source     string
}

// parseMountInfo reads the mount table in the /proc/<pid>/mountinfo format (see proc(5))
func parseMountInfo(r io.Reader) ([]mountEntry, error) {
	var entries []mountEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		separator := -1
		for i, field := range fields {
			if field == "-" {
				separator = i
				break
			}
		}
		if len(fields) < 5 || separator < 0 || separator+2 >= len(fields) {
			continue
		}
		entries = append(entries, mountEntry{
			mountPoint: unescapeMountField(fields[4]),
			fsType:     fields[separator+1],
			source:     unescapeMountField(fields[separator+2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read mount table: %w", err)
	}
	return entries, nil
}

// unescapeMountField turns octal escapes such as \040 (space) back into characters
func unescapeMountField(field string) string {
	if !strings.Contains(field, `\`) {
		return field
	}
	var b strings.Builder
	for i := 0; i < len(field); i++ {
		if field[i] == '\\' && i+4 <= len(field) {
			if code, err := strconv.ParseUint(field[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(code))
				i += 3
				continue
			}
		}
		b.WriteByte(field[i])
	}
	return b.String()
}

// mountFor returns the entry with the longest mount point containing path. Later entries
// win ties, as they are mounted on top.
func mountFor(entries []mountEntry, path string) (mountEntry, bool) {
	var found mountEntry
	ok := false
	for _, e := range entries {
		if !isUnder(path, e.mountPoint) {
			continue
		}
		if !ok || len(e.mountPoint) >= len(found.mountPoint) {
			found, ok = e, true
		}
	}
	return found, ok
}

func isUnder(path, mountPoint string) bool {
	if mountPoint == "/" || path == mountPoint {
		return true
	}
	return strings.HasPrefix(path, mountPoint+"/")
}

// isRemoteFuse tells whether a FUSE mount is served over the network. Both the
// "fuse.sshfs" type and the older "fuse" type with an "sshfs#host:" source are recognized.
func isRemoteFuse(e mountEntry) bool {
	subtype, hasSubtype := strings.CutPrefix(e.fsType, "fuse.")
	if !hasSubtype {
		subtype, _, _ = strings.Cut(e.source, "#")
	}
	return remoteFuseSubtypes.Contains(subtype)
}

// isRemoteFuseMount looks up the FUSE mount holding path. When the mount table can't be
// consulted the mount counts as remote, so that nothing is read over a network by mistake.
func isRemoteFuseMount(mountInfo string, path string) bool {
	file, err := os.Open(mountInfo)
	if err != nil {
		fmte.PrintfErrV("couldn't open %s: %v\n", mountInfo, err)
		return true
	}
	defer file.Close()
	entries, err := parseMountInfo(file)
	if err != nil {
		fmte.PrintfErrV("%v\n", err)
		return true
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	e, ok := mountFor(entries, filepath.Clean(path))
	if !ok || !strings.HasPrefix(e.fsType, "fuse") {
		return true
	}
	return isRemoteFuse(e)
}

//go:build linux

package fs

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// f_type values of network file systems (see statfs(2))
var remoteFileSystemTypes = map[uint32]string{
	0x6969:     "nfs",
	0x517b:     "smb",
	0xff534d42: "cifs",
	0xfe534d42: "smb2",
	0x73757245: "coda",
	0x5346414f: "afs",
	0x00c36400: "ceph",
	0x47504653: "gpfs",
	0x0bd00bd0: "lustre",
}

// FUSE covers both network (sshfs, rclone) and local (ntfs-3g) file systems; the mount
// table tells them apart
const fuseSuperMagic uint32 = 0x65735546

const mountInfoPath = "/proc/self/mountinfo"

func isRemoteType(fsType uint32) bool {
	_, remote := remoteFileSystemTypes[fsType]
	return remote
}

func isLocalFileSystem(path string) (bool, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false, fmt.Errorf("couldn't statfs \"%s\": %w", path, err)
	}
	fsType := uint32(st.Type)
	if fsType == fuseSuperMagic {
		return !isRemoteFuseMount(mountInfoPath, path), nil
	}
	return !isRemoteType(fsType), nil
}

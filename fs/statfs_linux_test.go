package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mountInfoSample = `22 1 8:2 / / rw,relatime shared:1 - ext4 /dev/sda2 rw
25 22 0:23 / /proc rw,nosuid shared:12 - proc proc rw
40 22 0:35 / /mnt/nas rw,relatime shared:20 - nfs4 nas:/export rw,vers=4.2
41 22 0:36 / /media/usb rw,relatime shared:21 - fuseblk /dev/sdb1 rw,user_id=0
42 22 0:37 / /home/me/remote rw,nosuid,nodev shared:22 - fuse.sshfs me@archive.example.org:/masters rw,user_id=1000
43 22 0:38 / /home/me/cloud rw,nosuid,nodev shared:23 - fuse.rclone s3:bucket rw,user_id=1000
44 22 0:39 / /home/me/old\040style rw,nosuid,nodev shared:24 - fuse sshfs#me@host:/data rw,user_id=1000
45 22 0:40 / /home/me/ntfs rw,nosuid,nodev shared:25 - fuse.ntfs-3g /dev/sdc1 rw,user_id=0
46 42 0:41 / /home/me/remote/local rw,relatime shared:26 - fuse.bindfs /srv/local rw
`

func TestIsRemoteType(t *testing.T) {
	tests := map[uint32]bool{
		0x6969:         true,  // nfs
		0xff534d42:     true,  // cifs
		0xfe534d42:     true,  // smb2
		0x00c36400:     true,  // ceph
		0xef53:         false, // ext4
		0x01021994:     false, // tmpfs
		0x58465342:     false, // xfs
		fuseSuperMagic: false, // decided by the mount table
	}
	for fsType, expected := range tests {
		assert.Equal(t, expected, isRemoteType(fsType), "%#x", fsType)
	}
}

func TestParseMountInfo(t *testing.T) {
	entries, err := parseMountInfo(strings.NewReader(mountInfoSample + "garbage line\n"))
	require.NoError(t, err)
	require.Len(t, entries, 9)
	assert.Equal(t, mountEntry{mountPoint: "/home/me/remote", fsType: "fuse.sshfs",
		source: "me@archive.example.org:/masters"}, entries[4])
	assert.Equal(t, "/home/me/old style", entries[6].mountPoint)
}

func TestRemoteFuseMounts(t *testing.T) {
	entries, err := parseMountInfo(strings.NewReader(mountInfoSample))
	require.NoError(t, err)
	tests := map[string]bool{
		"/home/me/remote/tape-001.wav":      true,
		"/home/me/cloud/scans/page.tif":     true,
		"/home/me/old style/a.pdf":          true,
		"/home/me/ntfs/report.docx":         false,
		"/home/me/remote/local/notes.txt":   false,
		"/home/me/remote-not-mounted/a.txt": false,
	}
	for path, expected := range tests {
		e, ok := mountFor(entries, path)
		require.True(t, ok, path)
		assert.Equal(t, expected, isRemoteFuse(e), path)
	}
}

func TestRemoteFuseMountFromFile(t *testing.T) {
	mountInfo := filepath.Join(t.TempDir(), "mountinfo")
	require.NoError(t, os.WriteFile(mountInfo, []byte(mountInfoSample), 0644))
	assert.True(t, isRemoteFuseMount(mountInfo, "/home/me/remote/tape-001.wav"))
	assert.False(t, isRemoteFuseMount(mountInfo, "/home/me/ntfs/report.docx"))
	// not a FUSE mount in the table
	assert.True(t, isRemoteFuseMount(mountInfo, "/etc/hostname"))
	assert.True(t, isRemoteFuseMount(filepath.Join(t.TempDir(), "missing"), "/home/me/ntfs/report.docx"))
}

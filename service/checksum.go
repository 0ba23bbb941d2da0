package service

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/m-manu/digipres-columns/bytesutil"
	"github.com/m-manu/digipres-columns/entity"
)

// ChunkSize is the size of the buffer a file is streamed through while computing its checksum
const ChunkSize = 64 * bytesutil.KIBI

// ErrUnsupportedAlgorithm is returned for a DigestAlgorithm outside the supported set
var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

// IOError is returned when the file to be checksummed can't be read
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("couldn't %s \"%s\": %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewHash creates a fresh hash.Hash for the given algorithm
func NewHash(algorithm entity.DigestAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case entity.MD5:
		return md5.New(), nil
	case entity.SHA1:
		return sha1.New(), nil
	case entity.SHA256:
		return sha256.New(), nil
	case entity.SHA512:
		return sha512.New(), nil
	}
	return nil, fmt.Errorf("%w: \"%s\"", ErrUnsupportedAlgorithm, algorithm)
}

// ComputeChecksum streams the file at path through the digest and returns it as lowercase hex.
// The file is read in chunks of ChunkSize, so memory use doesn't depend on file size.
func ComputeChecksum(path string, algorithm entity.DigestAlgorithm) (string, error) {
	h, hashErr := NewHash(algorithm)
	if hashErr != nil {
		return "", hashErr
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		return "", &IOError{Path: path, Op: "stat", Err: statErr}
	}
	if info.IsDir() {
		return "", &IOError{Path: path, Op: "read", Err: errors.New("is a directory")}
	}
	if !info.Mode().IsRegular() {
		return "", &IOError{Path: path, Op: "read", Err: fmt.Errorf("not a regular file (%s)", info.Mode().Type())}
	}
	file, openErr := os.Open(path)
	if openErr != nil {
		return "", &IOError{Path: path, Op: "open", Err: openErr}
	}
	defer file.Close()
	buf := make([]byte, ChunkSize)
	if _, copyErr := io.CopyBuffer(h, onlyReader{file}, buf); copyErr != nil {
		return "", &IOError{Path: path, Op: "read", Err: copyErr}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// onlyReader hides *os.File's WriterTo so that io.CopyBuffer uses our buffer
type onlyReader struct {
	io.Reader
}

package entity

import "strings"

// DigestAlgorithm names a checksum algorithm supported for the checksum column
type DigestAlgorithm string

const (
	MD5    DigestAlgorithm = "md5"
	SHA1   DigestAlgorithm = "sha1"
	SHA256 DigestAlgorithm = "sha256"
	SHA512 DigestAlgorithm = "sha512"
)

// DigestAlgorithms lists supported algorithms in the order they are matched
var DigestAlgorithms = []DigestAlgorithm{MD5, SHA1, SHA256, SHA512}

// ParseDigestAlgorithm picks the algorithm whose name is contained in token (case-insensitive),
// so "SHA256", "sha256sum" and "hash-sha256" all select SHA256
func ParseDigestAlgorithm(token string) (DigestAlgorithm, bool) {
	lowered := strings.ToLower(token)
	for _, alg := range DigestAlgorithms {
		if strings.Contains(lowered, string(alg)) {
			return alg, true
		}
	}
	return "", false
}

// HexLength is the length of the hex encoded digest, or 0 for an unknown algorithm
func (d DigestAlgorithm) HexLength() int {
	switch d {
	case MD5:
		return 32
	case SHA1:
		return 40
	case SHA256:
		return 64
	case SHA512:
		return 128
	}
	return 0
}

func (d DigestAlgorithm) String() string {
	return string(d)
}

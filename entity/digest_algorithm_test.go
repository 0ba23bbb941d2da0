package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDigestAlgorithm(t *testing.T) {
	tests := map[string]DigestAlgorithm{
		"md5":         MD5,
		"MD5":         MD5,
		"sha1":        SHA1,
		"SHA256":      SHA256,
		"hash-sha256": SHA256,
		"sha512sum":   SHA512,
	}
	for token, expected := range tests {
		alg, ok := ParseDigestAlgorithm(token)
		assert.True(t, ok, token)
		assert.Equal(t, expected, alg, token)
	}
}

func TestParseDigestAlgorithmUnknown(t *testing.T) {
	for _, token := range []string{"", "crc32", "sha", "blake3"} {
		alg, ok := ParseDigestAlgorithm(token)
		assert.False(t, ok, token)
		assert.Equal(t, DigestAlgorithm(""), alg)
	}
}

func TestHexLength(t *testing.T) {
	assert.Equal(t, 32, MD5.HexLength())
	assert.Equal(t, 40, SHA1.HexLength())
	assert.Equal(t, 64, SHA256.HexLength())
	assert.Equal(t, 128, SHA512.HexLength())
	assert.Equal(t, 0, DigestAlgorithm("crc32").HexLength())
}

func TestIdentificationResultIsEmpty(t *testing.T) {
	assert.True(t, IdentificationResult{}.IsEmpty())
	assert.False(t, IdentificationResult{DisplayName: "Plain Text File"}.IsEmpty())
}

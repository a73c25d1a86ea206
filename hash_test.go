package schemaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMD5Hex(t *testing.T) {
	// Known digest of the empty input.
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", MD5Hex(nil))
	assert.Equal(t, MD5Hex([]byte("a")), MD5Hex([]byte("a")))
	assert.NotEqual(t, MD5Hex([]byte("a")), MD5Hex([]byte("b")))
	assert.Len(t, MD5Hex([]byte("payload")), 32)
}

func TestXXHash64Hex(t *testing.T) {
	assert.Len(t, XXHash64Hex([]byte("payload")), 16)
	assert.Equal(t, XXHash64Hex([]byte("a")), XXHash64Hex([]byte("a")))
	assert.NotEqual(t, XXHash64Hex([]byte("a")), XXHash64Hex([]byte("b")))
}

func TestComputeHashTruncation(t *testing.T) {
	data := []byte("payload")
	full := MD5Hex(data)

	assert.Equal(t, full[:12], ComputeHash(data, MD5Hex, 12))
	assert.Equal(t, full, ComputeHash(data, MD5Hex, Unbounded))
	assert.Equal(t, full, ComputeHash(data, MD5Hex, len(full)))
	assert.Equal(t, full, ComputeHash(data, MD5Hex, 1000))
	assert.Equal(t, "", ComputeHash(data, MD5Hex, 0))
}

func TestComputeHashNilFunctionDefaultsToMD5(t *testing.T) {
	data := []byte("payload")
	assert.Equal(t, MD5Hex(data), ComputeHash(data, nil, Unbounded))
}

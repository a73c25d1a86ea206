package schemaid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// HashFunc is a one-way function from envelope bytes to a printable digest.
// Implementations must be deterministic: the same input always produces the
// same string.
type HashFunc func(data []byte) string

// MD5Hex is the default hash function: a 128-bit MD5 digest rendered as
// 32 lowercase hexadecimal characters. Plenty fast and collision-resistant
// for fingerprinting; this is not a security boundary.
func MD5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// XXHash64Hex is a faster, non-cryptographic alternative: a 64-bit xxHash
// digest rendered as 16 lowercase hexadecimal characters.
func XXHash64Hex(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Unbounded disables hash truncation, keeping the full digest.
const Unbounded = -1

// ComputeHash applies fn to data and truncates the digest from the start.
// A negative limit keeps the full digest, 0 yields an empty string, and a
// limit beyond the digest length yields the full digest with no padding.
// Truncation never errors.
func ComputeHash(data []byte, fn HashFunc, limit int) string {
	if fn == nil {
		fn = MD5Hex
	}
	digest := fn(data)
	if limit < 0 || limit >= len(digest) {
		return digest
	}
	return digest[:limit]
}

// Package digest computes content digests for deduplication and
// content addressing. A digest uniquely identifies a byte payload:
// two identical payloads always produce the same digest, and the
// dedup index relies on that.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Size is the digest length in bytes (SHA256 output).
const Size = sha256.Size

// HexSize is the digest length as a hex string.
const HexSize = Size * 2

// Sum returns the lowercase hex SHA256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Equal reports whether two hex digests refer to the same content.
// Comparison is case-insensitive so digests from mixed-case sources
// (user input, foreign tools) compare correctly.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Valid reports whether s is a well-formed hex digest.
func Valid(s string) bool {
	if len(s) != HexSize {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

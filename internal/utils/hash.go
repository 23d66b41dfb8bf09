package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 digest of content as a lowercase hex string.
// It is a change-detection fingerprint, not a security boundary; the
// empty string hashes to a fixed, well-defined digest like any other
// input.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

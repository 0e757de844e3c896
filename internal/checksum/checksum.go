package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Fields digests an ordered list of strings. A NUL separator keeps
// ("ab", "c") and ("a", "bc") apart.
func Fields(parts ...string) string {
	return Sum([]byte(strings.Join(parts, "\x00")))
}

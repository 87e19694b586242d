package skill

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum returns the SHA-256 hex digest of content. Identical content
// always produces the same checksum, which is the unit of truth for
// conflict detection.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

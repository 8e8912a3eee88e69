package upload

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives the verification fingerprint for an image from its raw
// bytes: the lowercase hex SHA-256 digest. Identical bytes always produce the
// identical fingerprint, and metadata edits never change it.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// URLHash is the content hash used to dedupe ingestion: sha256 of the
// download URL, hex encoded.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// HashBytes returns the lowercase hex SHA-256 digest of data. Identical bytes
// always produce an identical digest; this is the content address used for
// duplicate detection and tamper evidence.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader digests r to EOF. Read failures propagate as I/O errors.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// PayloadHash computes the SHA-256 of a raw payload exactly as scanned,
// padding included. Two scans of the same boarding pass share a hash.
func PayloadHash(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	return sum[:]
}

// PayloadHashHex is PayloadHash, hex-encoded.
func PayloadHashHex(raw string) string {
	return hex.EncodeToString(PayloadHash(raw))
}

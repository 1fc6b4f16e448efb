// Package checksum fingerprints generated listing texts.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ShortLength is the number of hex characters shown in reports.
const ShortLength = 12

// ErrHashMismatch is returned by Verify when content and hash disagree.
var ErrHashMismatch = errors.New("hash mismatch")

// Sum computes the SHA-256 hash of content as lowercase hex.
func Sum(content string) string {
	hash := sha256.Sum256([]byte(content))

	return hex.EncodeToString(hash[:])
}

// Short returns the leading characters of a hash for display.
func Short(sum string) string {
	if len(sum) <= ShortLength {
		return sum
	}

	return sum[:ShortLength]
}

// Verify checks that content still hashes to expected.
func Verify(content, expected string) error {
	calculated := Sum(content)
	if calculated != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, expected, calculated)
	}

	return nil
}

// Package cryptox holds the digest helpers used to fingerprint generated
// archives.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum compares data against a hex SHA-256. An empty want is
// accepted as "not recorded".
func VerifyChecksum(data []byte, want string) error {
	if want == "" {
		return nil
	}
	got := Checksum(data)
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return ErrChecksumMismatch
	}
	return nil
}

package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Random value sizes in bytes.
const (
	// CSRFTokenSize gives 32 base64url characters.
	CSRFTokenSize = 24
	// FileNameSize gives 32 hex characters.
	FileNameSize = 16
)

func randomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("random size must be positive, got %d", size)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// GenerateToken returns size random bytes as unpadded base64url, safe for
// cookie values and headers.
func GenerateToken(size int) (string, error) {
	buf, err := randomBytes(size)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateHex returns size random bytes as lowercase hex, safe for file and
// object names on any filesystem.
func GenerateHex(size int) (string, error) {
	buf, err := randomBytes(size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Fingerprint returns the base64url SHA-256 of value (43 characters). Logs
// use a prefix of it to correlate a client identifier without storing it.
func Fingerprint(value string) string {
	sum := sha256.Sum256([]byte(value))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

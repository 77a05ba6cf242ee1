package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PII blob layout constants.
const (
	PIIKeySize   = 32 // AES-256
	PIINonceSize = 12 // 96-bit GCM nonce
	PIITagSize   = 16 // GCM authentication tag

	piiSeparator = "."
)

var (
	// ErrPIIKey is returned when the configured key is not a 256-bit key.
	ErrPIIKey = errors.New("cryptox: pii key must be 32 bytes")

	// ErrPIIFormat is returned when an encrypted blob is not nonce.tag.ciphertext.
	ErrPIIFormat = errors.New("cryptox: malformed encrypted payload")

	// ErrPIIIntegrity is returned when the authentication tag does not verify.
	// This covers tampering as well as decrypting under the wrong key.
	ErrPIIIntegrity = errors.New("cryptox: encrypted payload failed authentication")
)

// PIICipher encrypts JSON-serialisable values at rest with AES-256-GCM.
//
// Encrypted blobs are encoded as three standard base64 segments joined by a
// dot: base64(nonce).base64(tag).base64(ciphertext). Existing rows depend on
// this layout, so it must not change.
//
// A PIICipher is immutable after construction and safe for concurrent use.
type PIICipher struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewPIICipherFromBase64 builds a cipher from a base64-encoded 32-byte key.
func NewPIICipherFromBase64(keyB64 string) (*PIICipher, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(keyB64))
	if err != nil {
		return nil, fmt.Errorf("cryptox: decode pii key: %w", err)
	}
	return NewPIICipher(key)
}

// NewPIICipher builds a cipher from a raw 32-byte key.
func NewPIICipher(key []byte) (*PIICipher, error) {
	if len(key) != PIIKeySize {
		return nil, ErrPIIKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, PIINonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &PIICipher{aead: gcm, rand: rand.Reader}, nil
}

// Encrypt marshals v to JSON and seals it under a fresh random nonce.
func (c *PIICipher) Encrypt(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cryptox: marshal pii: %w", err)
	}

	nonce := make([]byte, PIINonceSize)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal returns ciphertext||tag; the wire format carries the tag first.
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-PIITagSize], sealed[len(sealed)-PIITagSize:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, piiSeparator), nil
}

// Decrypt verifies and opens token, then unmarshals the JSON plaintext into v.
// Structural problems yield ErrPIIFormat before any cryptographic work is
// done; a failed tag check yields ErrPIIIntegrity.
func (c *PIICipher) Decrypt(token string, v any) error {
	nonce, tag, ciphertext, err := splitPIIToken(token)
	if err != nil {
		return err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return ErrPIIIntegrity
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("cryptox: unmarshal pii: %w", err)
	}
	return nil
}

func splitPIIToken(token string) (nonce, tag, ciphertext []byte, err error) {
	parts := strings.Split(token, piiSeparator)
	if len(parts) != 3 {
		return nil, nil, nil, ErrPIIFormat
	}
	for _, p := range parts {
		if p == "" {
			return nil, nil, nil, ErrPIIFormat
		}
	}

	decoded := make([][]byte, 3)
	for i, p := range parts {
		b, decErr := base64.StdEncoding.DecodeString(p)
		if decErr != nil {
			return nil, nil, nil, fmt.Errorf("%w: segment %d: %v", ErrPIIFormat, i, decErr)
		}
		decoded[i] = b
	}

	if len(decoded[0]) != PIINonceSize || len(decoded[1]) != PIITagSize {
		return nil, nil, nil, ErrPIIFormat
	}
	return decoded[0], decoded[1], decoded[2], nil
}

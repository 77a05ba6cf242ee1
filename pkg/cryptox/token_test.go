package cryptox

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(CSRFTokenSize)
	require.NoError(t, err)
	require.Len(t, token, 32)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, CSRFTokenSize)

	seen := map[string]bool{}
	for range 100 {
		token, err := GenerateToken(CSRFTokenSize)
		require.NoError(t, err)
		require.NotContains(t, seen, token, "duplicate token generated")
		seen[token] = true
	}
}

func TestGenerateHex(t *testing.T) {
	name, err := GenerateHex(FileNameSize)
	require.NoError(t, err)
	require.Len(t, name, 32)

	_, err = hex.DecodeString(name)
	require.NoError(t, err)

	other, err := GenerateHex(FileNameSize)
	require.NoError(t, err)
	require.NotEqual(t, name, other)
}

func TestRandom_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)

		name, err := GenerateHex(size)
		require.Error(t, err)
		require.Empty(t, name)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("ana@example.com")
	require.Equal(t, a, Fingerprint("ana@example.com"), "fingerprint should be deterministic")
	require.NotEqual(t, a, Fingerprint("ana@example.org"))
	require.Len(t, a, 43)
}

package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		tok, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		require.Len(t, tok, 43)
		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}

	tok, err := GenerateToken(TokenSize128)
	require.NoError(t, err)
	require.Len(t, tok, 22)
}

func TestGenerateTokenInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		tok, err := GenerateToken(n)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}

func TestFingerprintToken(t *testing.T) {
	a := FingerprintToken("header.payload.sig")
	require.Len(t, a, 12)
	require.Equal(t, a, FingerprintToken("header.payload.sig"))
	require.NotEqual(t, a, FingerprintToken("header.payload.sih"))
	require.Empty(t, FingerprintToken(""))
}

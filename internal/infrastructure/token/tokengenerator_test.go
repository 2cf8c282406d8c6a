package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_Generate(t *testing.T) {
	generator := NewTokenGenerator()

	plainToken, hash, err := generator.Generate()
	require.NoError(t, err)

	// 32 random bytes encode to 43 chars of padding-free base64url.
	assert.Len(t, plainToken, 43)
	assert.NotContains(t, plainToken, "=")
	assert.NotContains(t, plainToken, "+")
	assert.NotContains(t, plainToken, "/")

	// SHA-256 hex digest.
	assert.Len(t, hash, 64)
	assert.Equal(t, generator.Hash(plainToken), hash)
}

func TestTokenGenerator_GenerateUnique(t *testing.T) {
	generator := NewTokenGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		plainToken, _, err := generator.Generate()
		require.NoError(t, err)
		require.False(t, seen[plainToken], "generated duplicate token")
		seen[plainToken] = true
	}
}

func TestTokenGenerator_HashDeterministic(t *testing.T) {
	generator := NewTokenGenerator()

	assert.Equal(t, generator.Hash("abc"), generator.Hash("abc"))
	assert.NotEqual(t, generator.Hash("abc"), generator.Hash("abd"))
}

func TestTokenGenerator_Verify(t *testing.T) {
	generator := NewTokenGenerator()

	plainToken, hash, err := generator.Generate()
	require.NoError(t, err)

	assert.True(t, generator.Verify(plainToken, hash))
	assert.False(t, generator.Verify(plainToken+"x", hash))
	assert.False(t, generator.Verify("", hash))
}

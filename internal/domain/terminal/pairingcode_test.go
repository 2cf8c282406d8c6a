package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairingCode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates code with clamped validity", func(t *testing.T) {
		code, err := NewPairingCode(1, 10*time.Minute, now)
		require.NoError(t, err)

		assert.Equal(t, uint(1), code.TerminalID)
		assert.Len(t, code.Code, DefaultCodeLength)
		assert.Equal(t, now, code.CreatedAt)
		assert.Equal(t, now.Add(10*time.Minute), code.ExpiresAt)
		assert.Nil(t, code.UsedAt)
	})

	t.Run("requires terminal ID", func(t *testing.T) {
		_, err := NewPairingCode(0, 10*time.Minute, now)
		assert.Error(t, err)
	})

	t.Run("code uses unambiguous alphabet", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := NewPairingCode(1, 10*time.Minute, now)
			require.NoError(t, err)

			for _, ch := range code.Code {
				assert.Contains(t, codeAlphabet, string(ch))
			}
			assert.NotContains(t, code.Code, "I")
			assert.NotContains(t, code.Code, "O")
			assert.NotContains(t, code.Code, "0")
			assert.NotContains(t, code.Code, "1")
		}
	})
}

func TestClampValidity(t *testing.T) {
	assert.Equal(t, MinCodeValidity, ClampValidity(0))
	assert.Equal(t, MinCodeValidity, ClampValidity(-time.Hour))
	assert.Equal(t, MinCodeValidity, ClampValidity(30*time.Second))
	assert.Equal(t, 10*time.Minute, ClampValidity(10*time.Minute))
	assert.Equal(t, MaxCodeValidity, ClampValidity(2*time.Hour))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABC234", NormalizeCode("abc234"))
	assert.Equal(t, "ABC234", NormalizeCode("  ABC234  "))
	assert.Equal(t, "ABC234", NormalizeCode("\tabc234\n"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestPairingCode_IsUsed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	code, err := NewPairingCode(1, 10*time.Minute, now)
	require.NoError(t, err)
	assert.False(t, code.IsUsed())

	usedAt := now.Add(time.Minute)
	code.UsedAt = &usedAt
	assert.True(t, code.IsUsed())
}

func TestPairingCode_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	code, err := NewPairingCode(1, 10*time.Minute, now)
	require.NoError(t, err)

	assert.False(t, code.IsExpired(now))
	assert.False(t, code.IsExpired(now.Add(10*time.Minute-time.Second)))
	// Expiry boundary is exclusive: a code is dead at exactly ExpiresAt.
	assert.True(t, code.IsExpired(now.Add(10*time.Minute)))
	assert.True(t, code.IsExpired(now.Add(time.Hour)))
}

func TestGenerateCode_Distribution(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := generateCode(DefaultCodeLength)
		require.NoError(t, err)
		require.Len(t, code, DefaultCodeLength)
		require.Equal(t, strings.ToUpper(code), code)
		seen[code] = true
	}
	// With ~10^9 combinations, 1000 draws should essentially never collide.
	assert.Greater(t, len(seen), 990)
}

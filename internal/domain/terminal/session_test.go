package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := FarFutureExpiry(now, 100)

	t.Run("creates active session", func(t *testing.T) {
		session, err := NewSession(1, "hash", now, expiresAt, "203.0.113.9", "kiosk-ua")
		require.NoError(t, err)

		assert.Equal(t, uint(1), session.TerminalID)
		assert.Equal(t, "hash", session.TokenHash)
		assert.Equal(t, "203.0.113.9", session.CreatedByIP)
		assert.Equal(t, "kiosk-ua", session.UserAgent)
		assert.Nil(t, session.RevokedAt)
		assert.True(t, session.IsActive(now))
	})

	t.Run("requires terminal ID", func(t *testing.T) {
		_, err := NewSession(0, "hash", now, expiresAt, "", "")
		assert.Error(t, err)
	})

	t.Run("requires token hash", func(t *testing.T) {
		_, err := NewSession(1, "", now, expiresAt, "", "")
		assert.Error(t, err)
	})
}

func TestSession_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	session, err := NewSession(1, "hash", now, now.Add(time.Hour), "", "")
	require.NoError(t, err)

	assert.True(t, session.IsActive(now))
	assert.True(t, session.IsActive(now.Add(time.Hour-time.Second)))
	assert.False(t, session.IsActive(now.Add(time.Hour)))

	session.Revoke(now.Add(time.Minute))
	assert.False(t, session.IsActive(now.Add(2*time.Minute)))
}

func TestSession_Revoke(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	session, err := NewSession(1, "hash", now, FarFutureExpiry(now, 100), "", "")
	require.NoError(t, err)

	first := now.Add(time.Minute)
	session.Revoke(first)
	require.NotNil(t, session.RevokedAt)
	assert.Equal(t, first, *session.RevokedAt)

	// Revoking twice keeps the original timestamp.
	session.Revoke(now.Add(time.Hour))
	assert.Equal(t, first, *session.RevokedAt)
}

func TestFarFutureExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(100, 0, 0), FarFutureExpiry(now, 100))
	assert.Equal(t, now.AddDate(5, 0, 0), FarFutureExpiry(now, 5))
	// Non-positive years fall back to the default horizon.
	assert.Equal(t, now.AddDate(100, 0, 0), FarFutureExpiry(now, 0))
	assert.Equal(t, now.AddDate(100, 0, 0), FarFutureExpiry(now, -1))
}

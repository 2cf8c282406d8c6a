package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/models"
)

func setupSessionTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = database.AutoMigrate(&models.TerminalSessionModel{})
	require.NoError(t, err)

	return database
}

func createSession(t *testing.T, repo terminal.SessionRepository, terminalID uint, hash string, expiresAt time.Time) *terminal.Session {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session, err := terminal.NewSession(terminalID, hash, now, expiresAt, "203.0.113.9", "kiosk-ua")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestTerminalSessionRepository_FindActiveByHash(t *testing.T) {
	database := setupSessionTestDB(t)
	repo := NewTerminalSessionRepository(database)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("finds active session", func(t *testing.T) {
		created := createSession(t, repo, 1, "hash-active", now.Add(time.Hour))

		found, err := repo.FindActiveByHash(ctx, "hash-active", now)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, uint(1), found.TerminalID)
	})

	t.Run("unknown hash is absent not an error", func(t *testing.T) {
		found, err := repo.FindActiveByHash(ctx, "no-such-hash", now)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("expired session is lazily absent", func(t *testing.T) {
		createSession(t, repo, 2, "hash-expired", now.Add(time.Minute))

		found, err := repo.FindActiveByHash(ctx, "hash-expired", now)
		require.NoError(t, err)
		require.NotNil(t, found)

		// Same row, queried past its expiry. No cleanup ran in between.
		found, err = repo.FindActiveByHash(ctx, "hash-expired", now.Add(2*time.Minute))
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("revoked session is absent", func(t *testing.T) {
		createSession(t, repo, 3, "hash-revoked", now.Add(time.Hour))

		revoked, err := repo.RevokeAllActive(ctx, 3, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), revoked)

		found, err := repo.FindActiveByHash(ctx, "hash-revoked", now)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTerminalSessionRepository_RevokeAllActive(t *testing.T) {
	database := setupSessionTestDB(t)
	repo := NewTerminalSessionRepository(database)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	createSession(t, repo, 1, "hash-a", now.Add(time.Hour))
	createSession(t, repo, 1, "hash-b", now.Add(time.Hour))
	createSession(t, repo, 1, "hash-already-expired", now.Add(-time.Hour))
	createSession(t, repo, 2, "hash-other-terminal", now.Add(time.Hour))

	revoked, err := repo.RevokeAllActive(ctx, 1, now)
	require.NoError(t, err)
	// Only the two live sessions count; the expired one is left as is.
	assert.Equal(t, int64(2), revoked)

	found, err := repo.FindActiveByHash(ctx, "hash-other-terminal", now)
	require.NoError(t, err)
	assert.NotNil(t, found)

	// Revoking again is a no-op.
	revoked, err = repo.RevokeAllActive(ctx, 1, now)
	require.NoError(t, err)
	assert.Zero(t, revoked)
}

func TestTerminalSessionRepository_ListByTerminal(t *testing.T) {
	database := setupSessionTestDB(t)
	repo := NewTerminalSessionRepository(database)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	createSession(t, repo, 1, "hash-1", now.Add(time.Hour))
	createSession(t, repo, 1, "hash-2", now.Add(-time.Hour))
	createSession(t, repo, 2, "hash-3", now.Add(time.Hour))

	sessions, err := repo.ListByTerminal(ctx, 1)
	require.NoError(t, err)
	// Listing shows the full history, revoked and expired included.
	assert.Len(t, sessions, 2)
}

func TestTerminalSessionRepository_DeleteRevokedBefore(t *testing.T) {
	database := setupSessionTestDB(t)
	repo := NewTerminalSessionRepository(database)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	createSession(t, repo, 1, "hash-old-revoked", now.Add(time.Hour))
	createSession(t, repo, 1, "hash-fresh-revoked", now.Add(time.Hour))
	createSession(t, repo, 1, "hash-live", now.Add(time.Hour))

	_, err := repo.RevokeAllActive(ctx, 1, now.Add(-48*time.Hour))
	require.NoError(t, err)

	// hash-live gets re-created after the mass revocation.
	createSession(t, repo, 1, "hash-live-2", now.Add(time.Hour))

	purged, err := repo.DeleteRevokedBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)

	sessions, err := repo.ListByTerminal(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

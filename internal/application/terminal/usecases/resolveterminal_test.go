package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/repository"
	"medlog/internal/infrastructure/token"
	"medlog/internal/shared/logger"
)

type resolveTestEnv struct {
	db           *gorm.DB
	uc           *ResolveTerminalUseCase
	terminalRepo terminal.Repository
	sessionRepo  terminal.SessionRepository
	tokenGen     token.TokenGenerator
	now          time.Time
}

func setupResolveTest(t *testing.T) *resolveTestEnv {
	database := setupTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	terminalRepo := repository.NewTerminalRepository(database)
	sessionRepo := repository.NewTerminalSessionRepository(database)
	tokenGen := token.NewTokenGenerator()

	uc := NewResolveTerminalUseCase(sessionRepo, terminalRepo, tokenGen, logger.NewLogger()).
		WithClock(func() time.Time { return now }).
		WithSynchronousTouch()

	return &resolveTestEnv{
		db:           database,
		uc:           uc,
		terminalRepo: terminalRepo,
		sessionRepo:  sessionRepo,
		tokenGen:     tokenGen,
		now:          now,
	}
}

// pairDevice creates an active terminal with a stored session and returns the
// raw token a device would hold.
func (env *resolveTestEnv) pairDevice(t *testing.T) (*terminal.Terminal, *terminal.Session, string) {
	term, err := terminal.New(1, "Front Desk Kiosk", env.now)
	require.NoError(t, err)
	require.NoError(t, env.terminalRepo.Create(context.Background(), term))

	plainToken, tokenHash, err := env.tokenGen.Generate()
	require.NoError(t, err)

	session, err := terminal.NewSession(
		term.ID, tokenHash, env.now, terminal.FarFutureExpiry(env.now, 100), "", "")
	require.NoError(t, err)
	require.NoError(t, env.sessionRepo.Create(context.Background(), session))

	return term, session, plainToken
}

func TestResolveTerminal_Success(t *testing.T) {
	env := setupResolveTest(t)
	term, session, plainToken := env.pairDevice(t)

	resolved, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{Token: plainToken})
	require.NoError(t, err)
	require.NotNil(t, resolved)

	assert.Equal(t, term.ID, resolved.TerminalID)
	assert.Equal(t, term.SiteID, resolved.SiteID)
	assert.Equal(t, session.ID, resolved.SessionID)
	assert.Equal(t, term.Name, resolved.Name)
}

func TestResolveTerminal_TouchesLastSeen(t *testing.T) {
	env := setupResolveTest(t)
	term, _, plainToken := env.pairDevice(t)

	_, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{Token: plainToken})
	require.NoError(t, err)

	stored, err := env.terminalRepo.GetByID(context.Background(), term.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastSeenAt)
	assert.WithinDuration(t, env.now, *stored.LastSeenAt, time.Second)
}

func TestResolveTerminal_Unauthenticated(t *testing.T) {
	env := setupResolveTest(t)

	t.Run("empty token", func(t *testing.T) {
		resolved, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{})
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("unknown token", func(t *testing.T) {
		resolved, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{Token: "no-such-token"})
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("revoked session", func(t *testing.T) {
		term, _, plainToken := env.pairDevice(t)

		_, err := env.sessionRepo.RevokeAllActive(context.Background(), term.ID, env.now)
		require.NoError(t, err)

		resolved, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{Token: plainToken})
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("expired session", func(t *testing.T) {
		term, err := terminal.New(1, "Old Kiosk", env.now)
		require.NoError(t, err)
		require.NoError(t, env.terminalRepo.Create(context.Background(), term))

		plainToken, tokenHash, err := env.tokenGen.Generate()
		require.NoError(t, err)

		session, err := terminal.NewSession(
			term.ID, tokenHash, env.now.Add(-2*time.Hour), env.now.Add(-time.Hour), "", "")
		require.NoError(t, err)
		require.NoError(t, env.sessionRepo.Create(context.Background(), session))

		resolved, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{Token: plainToken})
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("inactive terminal", func(t *testing.T) {
		term, _, plainToken := env.pairDevice(t)

		term.Deactivate()
		require.NoError(t, env.terminalRepo.Update(context.Background(), term))

		resolved, err := env.uc.Execute(context.Background(), ResolveTerminalCommand{Token: plainToken})
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})
}

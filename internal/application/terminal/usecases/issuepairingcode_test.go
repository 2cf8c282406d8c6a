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
	"medlog/internal/shared/config"
	"medlog/internal/shared/db"
	"medlog/internal/shared/logger"
)

type issueTestEnv struct {
	db           *gorm.DB
	uc           *IssuePairingCodeUseCase
	codeRepo     terminal.PairingCodeRepository
	terminalRepo terminal.Repository
	now          time.Time
}

func setupIssueTest(t *testing.T) *issueTestEnv {
	database := setupTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	codeRepo := repository.NewPairingCodeRepository(database)
	terminalRepo := repository.NewTerminalRepository(database)
	auditRepo := repository.NewAuditEventRepository(database)

	uc := NewIssuePairingCodeUseCase(
		codeRepo, terminalRepo, auditRepo,
		db.NewTransactionManager(database),
		config.PairingConfig{
			CodeLength:         terminal.DefaultCodeLength,
			MinValidityMinutes: 1,
			MaxValidityMinutes: 60,
		},
		logger.NewLogger(),
	).WithClock(func() time.Time { return now })

	return &issueTestEnv{
		db:           database,
		uc:           uc,
		codeRepo:     codeRepo,
		terminalRepo: terminalRepo,
		now:          now,
	}
}

func (env *issueTestEnv) createTerminal(t *testing.T, active bool) *terminal.Terminal {
	term, err := terminal.New(1, "Lobby Kiosk", env.now)
	require.NoError(t, err)
	term.Active = active
	require.NoError(t, env.terminalRepo.Create(context.Background(), term))
	return term
}

func TestIssuePairingCode_Success(t *testing.T) {
	env := setupIssueTest(t)
	term := env.createTerminal(t, true)

	result, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 10,
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Code.ID)
	assert.Len(t, result.Code.Code, terminal.DefaultCodeLength)
	assert.Equal(t, env.now.Add(10*time.Minute), result.Code.ExpiresAt)
	assert.Zero(t, result.Superseded)
}

func TestIssuePairingCode_DefaultValidity(t *testing.T) {
	env := setupIssueTest(t)
	term := env.createTerminal(t, true)

	result, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID: term.ID,
	})
	require.NoError(t, err)

	// Unspecified validity defaults to half the policy maximum.
	assert.Equal(t, env.now.Add(30*time.Minute), result.Code.ExpiresAt)
}

func TestIssuePairingCode_ClampsValidity(t *testing.T) {
	env := setupIssueTest(t)
	term := env.createTerminal(t, true)

	result, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, env.now.Add(terminal.MaxCodeValidity), result.Code.ExpiresAt)
}

func TestIssuePairingCode_SupersedesLiveCode(t *testing.T) {
	env := setupIssueTest(t)
	term := env.createTerminal(t, true)

	first, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 10,
	})
	require.NoError(t, err)

	second, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Superseded)

	// The superseded code is now force-expired.
	stored, err := env.codeRepo.GetByCode(context.Background(), first.Code.Code)
	require.NoError(t, err)
	assert.True(t, stored.IsExpired(env.now))

	// The new code remains live.
	fresh, err := env.codeRepo.GetByCode(context.Background(), second.Code.Code)
	require.NoError(t, err)
	assert.False(t, fresh.IsExpired(env.now))
}

func TestIssuePairingCode_UsedCodeNotSuperseded(t *testing.T) {
	env := setupIssueTest(t)
	term := env.createTerminal(t, true)

	first, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 10,
	})
	require.NoError(t, err)
	require.NoError(t, env.codeRepo.MarkUsed(context.Background(), first.Code.ID, env.now, ""))

	second, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 10,
	})
	require.NoError(t, err)
	assert.Zero(t, second.Superseded)
}

func TestIssuePairingCode_InactiveTerminal(t *testing.T) {
	env := setupIssueTest(t)
	term := env.createTerminal(t, false)

	_, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      term.ID,
		ValidityMinutes: 10,
	})
	assert.ErrorIs(t, err, terminal.ErrTerminalInactive)
}

func TestIssuePairingCode_UnknownTerminal(t *testing.T) {
	env := setupIssueTest(t)

	_, err := env.uc.Execute(context.Background(), IssuePairingCodeCommand{
		TerminalID:      999,
		ValidityMinutes: 10,
	})
	assert.ErrorIs(t, err, terminal.ErrTerminalNotFound)
}

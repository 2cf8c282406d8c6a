package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/infrastructure/repository"
	"medlog/internal/infrastructure/token"
	"medlog/internal/shared/config"
	"medlog/internal/shared/db"
	"medlog/internal/shared/logger"
)

// setupTestDB opens a uniquely named shared-cache in-memory database so that
// every pooled connection, including those opened inside transactions, sees
// the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection serializes transactions, sidestepping sqlite
	// shared-cache lock errors under concurrent writers.
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = database.AutoMigrate(
		&models.SiteModel{},
		&models.TerminalModel{},
		&models.PairingCodeModel{},
		&models.TerminalSessionModel{},
		&models.AuditEventModel{},
	)
	require.NoError(t, err)

	return database
}

type pairTestEnv struct {
	db           *gorm.DB
	uc           *PairTerminalUseCase
	codeRepo     terminal.PairingCodeRepository
	terminalRepo terminal.Repository
	sessionRepo  terminal.SessionRepository
	tokenGen     token.TokenGenerator
	now          time.Time
}

func setupPairTest(t *testing.T) *pairTestEnv {
	database := setupTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	codeRepo := repository.NewPairingCodeRepository(database)
	terminalRepo := repository.NewTerminalRepository(database)
	sessionRepo := repository.NewTerminalSessionRepository(database)
	auditRepo := repository.NewAuditEventRepository(database)
	tokenGen := token.NewTokenGenerator()

	uc := NewPairTerminalUseCase(
		codeRepo, terminalRepo, sessionRepo, auditRepo, tokenGen,
		db.NewTransactionManager(database),
		config.SessionConfig{FarFutureYears: 100},
		logger.NewLogger(),
	).WithClock(func() time.Time { return now })

	return &pairTestEnv{
		db:           database,
		uc:           uc,
		codeRepo:     codeRepo,
		terminalRepo: terminalRepo,
		sessionRepo:  sessionRepo,
		tokenGen:     tokenGen,
		now:          now,
	}
}

func (env *pairTestEnv) createTerminal(t *testing.T, active bool) *terminal.Terminal {
	term, err := terminal.New(1, "Front Desk Kiosk", env.now)
	require.NoError(t, err)
	term.Active = active
	require.NoError(t, env.terminalRepo.Create(context.Background(), term))
	return term
}

func (env *pairTestEnv) createCode(t *testing.T, terminalID uint, issuedAt time.Time) *terminal.PairingCode {
	code, err := terminal.NewPairingCode(terminalID, 10*time.Minute, issuedAt)
	require.NoError(t, err)
	require.NoError(t, env.codeRepo.Create(context.Background(), code))
	return code
}

func TestPairTerminal_Success(t *testing.T) {
	env := setupPairTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)

	result, err := env.uc.Execute(context.Background(), PairTerminalCommand{
		Code:      code.Code,
		IPAddress: "203.0.113.9",
		UserAgent: "kiosk-ua",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.PlainToken)
	assert.Equal(t, term.ID, result.Terminal.ID)
	assert.NotZero(t, result.Session.ID)
	assert.Equal(t, env.now.AddDate(100, 0, 0), result.Session.ExpiresAt)

	// The stored session matches the hash of the returned token.
	session, err := env.sessionRepo.FindActiveByHash(
		context.Background(), env.tokenGen.Hash(result.PlainToken), env.now)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, result.Session.ID, session.ID)
	assert.Equal(t, "203.0.113.9", session.CreatedByIP)

	// The code is consumed.
	stored, err := env.codeRepo.GetByCode(context.Background(), code.Code)
	require.NoError(t, err)
	assert.True(t, stored.IsUsed())
	assert.Equal(t, "203.0.113.9", stored.UsedByIP)

	// The redemption left an audit trail.
	var auditCount int64
	require.NoError(t, env.db.Model(&models.AuditEventModel{}).
		Where("terminal_id = ? AND event_type = ?", term.ID, "code_redeemed").
		Count(&auditCount).Error)
	assert.Equal(t, int64(1), auditCount)
}

func TestPairTerminal_NormalizesInput(t *testing.T) {
	env := setupPairTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)

	result, err := env.uc.Execute(context.Background(), PairTerminalCommand{
		Code: "  " + strings.ToLower(code.Code) + "\n",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.PlainToken)
}

func TestPairTerminal_Failures(t *testing.T) {
	env := setupPairTest(t)

	t.Run("blank code", func(t *testing.T) {
		_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: "   "})
		assert.ErrorIs(t, err, terminal.ErrCodeInvalid)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: "ZZZZZZ"})
		assert.ErrorIs(t, err, terminal.ErrCodeNotFound)
	})

	t.Run("already used code", func(t *testing.T) {
		term := env.createTerminal(t, true)
		code := env.createCode(t, term.ID, env.now)

		_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
		require.NoError(t, err)

		_, err = env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
		assert.ErrorIs(t, err, terminal.ErrCodeAlreadyUsed)
	})

	t.Run("expired code", func(t *testing.T) {
		term := env.createTerminal(t, true)
		code := env.createCode(t, term.ID, env.now.Add(-time.Hour))

		_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
		assert.ErrorIs(t, err, terminal.ErrCodeExpired)
	})

	t.Run("used wins over expired", func(t *testing.T) {
		term := env.createTerminal(t, true)
		code := env.createCode(t, term.ID, env.now.Add(-time.Hour))

		usedAt := env.now.Add(-50 * time.Minute)
		require.NoError(t, env.codeRepo.MarkUsed(context.Background(), code.ID, usedAt, ""))

		_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
		assert.ErrorIs(t, err, terminal.ErrCodeAlreadyUsed)
	})

	t.Run("inactive terminal leaves code redeemable", func(t *testing.T) {
		term := env.createTerminal(t, false)
		code := env.createCode(t, term.ID, env.now)

		_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
		assert.ErrorIs(t, err, terminal.ErrTerminalInactive)

		// The rejection rolled back; the code is still unused.
		stored, err := env.codeRepo.GetByCode(context.Background(), code.Code)
		require.NoError(t, err)
		assert.False(t, stored.IsUsed())
	})
}

func TestPairTerminal_FailureCreatesNoSession(t *testing.T) {
	env := setupPairTest(t)
	term := env.createTerminal(t, false)
	code := env.createCode(t, term.ID, env.now)

	_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
	require.ErrorIs(t, err, terminal.ErrTerminalInactive)

	var sessionCount int64
	require.NoError(t, env.db.Model(&models.TerminalSessionModel{}).Count(&sessionCount).Error)
	assert.Zero(t, sessionCount)
}

func TestPairTerminal_RepairingSupersedesOldSession(t *testing.T) {
	env := setupPairTest(t)
	term := env.createTerminal(t, true)

	firstCode := env.createCode(t, term.ID, env.now)
	first, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: firstCode.Code})
	require.NoError(t, err)

	secondCode := env.createCode(t, term.ID, env.now)
	second, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: secondCode.Code})
	require.NoError(t, err)

	// The old device's credential no longer resolves; the new one does.
	old, err := env.sessionRepo.FindActiveByHash(
		context.Background(), env.tokenGen.Hash(first.PlainToken), env.now)
	require.NoError(t, err)
	assert.Nil(t, old)

	fresh, err := env.sessionRepo.FindActiveByHash(
		context.Background(), env.tokenGen.Hash(second.PlainToken), env.now)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, second.Session.ID, fresh.ID)
}

func TestPairTerminal_ConcurrentRedemption(t *testing.T) {
	env := setupPairTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), PairTerminalCommand{Code: code.Code})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// The compare-and-swap guarantees a code never yields two sessions.
	assert.Equal(t, 1, successes)

	var sessionCount int64
	require.NoError(t, env.db.Model(&models.TerminalSessionModel{}).Count(&sessionCount).Error)
	assert.Equal(t, int64(1), sessionCount)
}

package usecases

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"medlog/internal/domain/audit"
	"medlog/internal/domain/terminal"
	"medlog/internal/shared/config"
	"medlog/internal/shared/db"
	"medlog/internal/shared/logger"
)

// codeCreateAttempts bounds retries when a freshly generated code collides
// with a historical one on the unique index.
const codeCreateAttempts = 3

type IssuePairingCodeCommand struct {
	TerminalID      uint
	ValidityMinutes int
}

type IssuePairingCodeResult struct {
	Code       *terminal.PairingCode
	Superseded int64
}

// IssuePairingCodeUseCase creates a fresh pairing code for a terminal. Any
// still-live code for the same terminal is force-expired first so at most
// one code is redeemable per terminal.
type IssuePairingCodeUseCase struct {
	codeRepo      terminal.PairingCodeRepository
	terminalRepo  terminal.Repository
	auditRepo     audit.Repository
	txManager     *db.TransactionManager
	pairingConfig config.PairingConfig
	logger        logger.Interface
	now           func() time.Time
}

func NewIssuePairingCodeUseCase(
	codeRepo terminal.PairingCodeRepository,
	terminalRepo terminal.Repository,
	auditRepo audit.Repository,
	txManager *db.TransactionManager,
	pairingConfig config.PairingConfig,
	logger logger.Interface,
) *IssuePairingCodeUseCase {
	return &IssuePairingCodeUseCase{
		codeRepo:      codeRepo,
		terminalRepo:  terminalRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		pairingConfig: pairingConfig,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (uc *IssuePairingCodeUseCase) WithClock(now func() time.Time) *IssuePairingCodeUseCase {
	uc.now = now
	return uc
}

func (uc *IssuePairingCodeUseCase) Execute(ctx context.Context, cmd IssuePairingCodeCommand) (*IssuePairingCodeResult, error) {
	now := uc.now().UTC()

	term, err := uc.terminalRepo.GetByID(ctx, cmd.TerminalID)
	if err != nil {
		return nil, err
	}
	if !term.Active {
		return nil, terminal.ErrTerminalInactive
	}

	validity := time.Duration(cmd.ValidityMinutes) * time.Minute
	if cmd.ValidityMinutes == 0 {
		validity = time.Duration(uc.pairingConfig.MaxValidityMinutes) * time.Minute / 2
	}

	var result *IssuePairingCodeResult
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		superseded, err := uc.codeRepo.ExpireActiveForTerminal(txCtx, term.ID, now)
		if err != nil {
			return err
		}

		var code *terminal.PairingCode
		for attempt := 0; attempt < codeCreateAttempts; attempt++ {
			code, err = terminal.NewPairingCode(term.ID, validity, now)
			if err != nil {
				return err
			}
			err = uc.codeRepo.Create(txCtx, code)
			if err == nil {
				break
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
		}
		if err != nil {
			return err
		}

		result = &IssuePairingCodeResult{
			Code:       code,
			Superseded: superseded,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := audit.NewEvent(term.ID, audit.EventCodeIssued, map[string]any{
		"code_id":    result.Code.ID,
		"expires_at": result.Code.ExpiresAt,
		"superseded": result.Superseded,
	}, now)
	if err := uc.auditRepo.Record(ctx, event); err != nil {
		uc.logger.Warnw("failed to record code issue audit event", "error", err, "terminal_id", term.ID)
	}

	uc.logger.Infow("pairing code issued",
		"terminal_id", term.ID,
		"code_id", result.Code.ID,
		"expires_at", result.Code.ExpiresAt,
		"superseded", result.Superseded)

	return result, nil
}

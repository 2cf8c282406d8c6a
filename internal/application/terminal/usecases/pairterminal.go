package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/audit"
	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/token"
	"medlog/internal/shared/config"
	"medlog/internal/shared/db"
	"medlog/internal/shared/logger"
)

type PairTerminalCommand struct {
	Code      string
	IPAddress string
	UserAgent string
}

type PairTerminalResult struct {
	// PlainToken is returned to the device exactly once. Only its hash is
	// stored.
	PlainToken string
	Session    *terminal.Session
	Terminal   *terminal.Terminal
}

// PairTerminalUseCase redeems a pairing code for a device session. The
// lookup, the used-flag compare-and-swap, the supersession of prior sessions
// and the new session insert run in one transaction so a code can never
// produce two sessions.
type PairTerminalUseCase struct {
	codeRepo      terminal.PairingCodeRepository
	terminalRepo  terminal.Repository
	sessionRepo   terminal.SessionRepository
	auditRepo     audit.Repository
	tokenGen      token.TokenGenerator
	txManager     *db.TransactionManager
	sessionConfig config.SessionConfig
	logger        logger.Interface
	now           func() time.Time
}

func NewPairTerminalUseCase(
	codeRepo terminal.PairingCodeRepository,
	terminalRepo terminal.Repository,
	sessionRepo terminal.SessionRepository,
	auditRepo audit.Repository,
	tokenGen token.TokenGenerator,
	txManager *db.TransactionManager,
	sessionConfig config.SessionConfig,
	logger logger.Interface,
) *PairTerminalUseCase {
	return &PairTerminalUseCase{
		codeRepo:      codeRepo,
		terminalRepo:  terminalRepo,
		sessionRepo:   sessionRepo,
		auditRepo:     auditRepo,
		tokenGen:      tokenGen,
		txManager:     txManager,
		sessionConfig: sessionConfig,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (uc *PairTerminalUseCase) WithClock(now func() time.Time) *PairTerminalUseCase {
	uc.now = now
	return uc
}

func (uc *PairTerminalUseCase) Execute(ctx context.Context, cmd PairTerminalCommand) (*PairTerminalResult, error) {
	code := terminal.NormalizeCode(cmd.Code)
	if code == "" {
		return nil, terminal.ErrCodeInvalid
	}

	now := uc.now().UTC()

	var (
		result  *PairTerminalResult
		codeID  uint
		revoked int64
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		pairingCode, err := uc.codeRepo.GetByCode(txCtx, code)
		if err != nil {
			return err
		}

		// Check order is fixed: used before expired, so a code that is both
		// reports as already used.
		if pairingCode.IsUsed() {
			return terminal.ErrCodeAlreadyUsed
		}
		if pairingCode.IsExpired(now) {
			return terminal.ErrCodeExpired
		}

		term, err := uc.terminalRepo.GetByID(txCtx, pairingCode.TerminalID)
		if err != nil {
			return err
		}
		if !term.Active {
			return terminal.ErrTerminalInactive
		}

		if err := uc.codeRepo.MarkUsed(txCtx, pairingCode.ID, now, cmd.IPAddress); err != nil {
			return err
		}
		codeID = pairingCode.ID

		// A terminal is one physical device; re-pairing supersedes whatever
		// device held the previous session.
		revoked, err = uc.sessionRepo.RevokeAllActive(txCtx, term.ID, now)
		if err != nil {
			return err
		}

		plainToken, tokenHash, err := uc.tokenGen.Generate()
		if err != nil {
			return err
		}

		expiresAt := terminal.FarFutureExpiry(now, uc.sessionConfig.FarFutureYears)
		session, err := terminal.NewSession(term.ID, tokenHash, now, expiresAt, cmd.IPAddress, cmd.UserAgent)
		if err != nil {
			return err
		}

		if err := uc.sessionRepo.Create(txCtx, session); err != nil {
			return err
		}

		result = &PairTerminalResult{
			PlainToken: plainToken,
			Session:    session,
			Terminal:   term,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Audit is recorded after commit; a failed write must not undo a pairing
	// the device already observed.
	event := audit.NewEvent(result.Terminal.ID, audit.EventCodeRedeemed, map[string]any{
		"code_id":    codeID,
		"session_id": result.Session.ID,
		"ip":         cmd.IPAddress,
		"superseded": revoked,
	}, now)
	if err := uc.auditRepo.Record(ctx, event); err != nil {
		uc.logger.Warnw("failed to record pairing audit event", "error", err, "terminal_id", result.Terminal.ID)
	}

	uc.logger.Infow("terminal paired",
		"terminal_id", result.Terminal.ID,
		"site_id", result.Terminal.SiteID,
		"session_id", result.Session.ID)

	return result, nil
}

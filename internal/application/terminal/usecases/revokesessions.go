package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/audit"
	"medlog/internal/domain/terminal"
	"medlog/internal/shared/logger"
)

type RevokeSessionsCommand struct {
	TerminalID uint
}

type RevokeSessionsResult struct {
	Revoked int64
}

// RevokeSessionsUseCase invalidates every active session of a terminal. The
// device's next request fails resolution and it falls back to the pairing
// screen; a new code must be issued to bring it back.
type RevokeSessionsUseCase struct {
	sessionRepo  terminal.SessionRepository
	terminalRepo terminal.Repository
	auditRepo    audit.Repository
	logger       logger.Interface
	now          func() time.Time
}

func NewRevokeSessionsUseCase(
	sessionRepo terminal.SessionRepository,
	terminalRepo terminal.Repository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *RevokeSessionsUseCase {
	return &RevokeSessionsUseCase{
		sessionRepo:  sessionRepo,
		terminalRepo: terminalRepo,
		auditRepo:    auditRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *RevokeSessionsUseCase) Execute(ctx context.Context, cmd RevokeSessionsCommand) (*RevokeSessionsResult, error) {
	now := uc.now().UTC()

	term, err := uc.terminalRepo.GetByID(ctx, cmd.TerminalID)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.sessionRepo.RevokeAllActive(ctx, term.ID, now)
	if err != nil {
		return nil, err
	}

	event := audit.NewEvent(term.ID, audit.EventSessionsRevoked, map[string]any{
		"revoked": revoked,
	}, now)
	if err := uc.auditRepo.Record(ctx, event); err != nil {
		uc.logger.Warnw("failed to record revocation audit event", "error", err, "terminal_id", term.ID)
	}

	uc.logger.Infow("terminal sessions revoked", "terminal_id", term.ID, "revoked", revoked)

	return &RevokeSessionsResult{Revoked: revoked}, nil
}

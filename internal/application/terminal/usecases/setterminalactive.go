package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/audit"
	"medlog/internal/domain/terminal"
	"medlog/internal/shared/logger"
)

type SetTerminalActiveCommand struct {
	TerminalID uint
	Active     bool
}

type SetTerminalActiveResult struct {
	Terminal *terminal.Terminal
	// RevokedSessions is nonzero only when deactivating.
	RevokedSessions int64
}

// SetTerminalActiveUseCase activates or deactivates a terminal.
// Deactivation also revokes all of the terminal's sessions so the device is
// locked out immediately rather than on its next pairing.
type SetTerminalActiveUseCase struct {
	terminalRepo terminal.Repository
	sessionRepo  terminal.SessionRepository
	auditRepo    audit.Repository
	logger       logger.Interface
	now          func() time.Time
}

func NewSetTerminalActiveUseCase(
	terminalRepo terminal.Repository,
	sessionRepo terminal.SessionRepository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *SetTerminalActiveUseCase {
	return &SetTerminalActiveUseCase{
		terminalRepo: terminalRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *SetTerminalActiveUseCase) Execute(ctx context.Context, cmd SetTerminalActiveCommand) (*SetTerminalActiveResult, error) {
	now := uc.now().UTC()

	term, err := uc.terminalRepo.GetByID(ctx, cmd.TerminalID)
	if err != nil {
		return nil, err
	}

	if term.Active == cmd.Active {
		return &SetTerminalActiveResult{Terminal: term}, nil
	}

	var revoked int64
	eventType := audit.EventTerminalActivated
	if cmd.Active {
		term.Activate()
	} else {
		term.Deactivate()
		eventType = audit.EventTerminalDeactivated

		revoked, err = uc.sessionRepo.RevokeAllActive(ctx, term.ID, now)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.terminalRepo.Update(ctx, term); err != nil {
		return nil, err
	}

	details := map[string]any{}
	if revoked > 0 {
		details["revoked_sessions"] = revoked
	}
	event := audit.NewEvent(term.ID, eventType, details, now)
	if err := uc.auditRepo.Record(ctx, event); err != nil {
		uc.logger.Warnw("failed to record terminal state audit event", "error", err, "terminal_id", term.ID)
	}

	uc.logger.Infow("terminal state changed",
		"terminal_id", term.ID,
		"active", term.Active,
		"revoked_sessions", revoked)

	return &SetTerminalActiveResult{Terminal: term, RevokedSessions: revoked}, nil
}

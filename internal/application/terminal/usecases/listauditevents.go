package usecases

import (
	"context"

	"medlog/internal/domain/audit"
	"medlog/internal/domain/terminal"
)

type ListAuditEventsCommand struct {
	TerminalID uint
	Limit      int
}

type ListAuditEventsResult struct {
	Events []*audit.Event
}

type ListAuditEventsUseCase struct {
	auditRepo    audit.Repository
	terminalRepo terminal.Repository
}

func NewListAuditEventsUseCase(
	auditRepo audit.Repository,
	terminalRepo terminal.Repository,
) *ListAuditEventsUseCase {
	return &ListAuditEventsUseCase{
		auditRepo:    auditRepo,
		terminalRepo: terminalRepo,
	}
}

func (uc *ListAuditEventsUseCase) Execute(ctx context.Context, cmd ListAuditEventsCommand) (*ListAuditEventsResult, error) {
	if _, err := uc.terminalRepo.GetByID(ctx, cmd.TerminalID); err != nil {
		return nil, err
	}

	events, err := uc.auditRepo.ListByTerminal(ctx, cmd.TerminalID, cmd.Limit)
	if err != nil {
		return nil, err
	}
	return &ListAuditEventsResult{Events: events}, nil
}

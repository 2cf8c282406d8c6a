package usecases

import (
	"context"

	"medlog/internal/domain/terminal"
)

type ListTerminalSessionsCommand struct {
	TerminalID uint
}

type ListTerminalSessionsResult struct {
	Sessions []*terminal.Session
}

type ListTerminalSessionsUseCase struct {
	sessionRepo  terminal.SessionRepository
	terminalRepo terminal.Repository
}

func NewListTerminalSessionsUseCase(
	sessionRepo terminal.SessionRepository,
	terminalRepo terminal.Repository,
) *ListTerminalSessionsUseCase {
	return &ListTerminalSessionsUseCase{
		sessionRepo:  sessionRepo,
		terminalRepo: terminalRepo,
	}
}

func (uc *ListTerminalSessionsUseCase) Execute(ctx context.Context, cmd ListTerminalSessionsCommand) (*ListTerminalSessionsResult, error) {
	if _, err := uc.terminalRepo.GetByID(ctx, cmd.TerminalID); err != nil {
		return nil, err
	}

	sessions, err := uc.sessionRepo.ListByTerminal(ctx, cmd.TerminalID)
	if err != nil {
		return nil, err
	}
	return &ListTerminalSessionsResult{Sessions: sessions}, nil
}

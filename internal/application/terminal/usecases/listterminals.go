package usecases

import (
	"context"

	"medlog/internal/domain/terminal"
)

type ListTerminalsCommand struct {
	// SiteID filters by site; zero lists all terminals.
	SiteID uint
}

type ListTerminalsResult struct {
	Terminals []*terminal.Terminal
}

type ListTerminalsUseCase struct {
	terminalRepo terminal.Repository
}

func NewListTerminalsUseCase(terminalRepo terminal.Repository) *ListTerminalsUseCase {
	return &ListTerminalsUseCase{terminalRepo: terminalRepo}
}

func (uc *ListTerminalsUseCase) Execute(ctx context.Context, cmd ListTerminalsCommand) (*ListTerminalsResult, error) {
	terminals, err := uc.terminalRepo.List(ctx, cmd.SiteID)
	if err != nil {
		return nil, err
	}
	return &ListTerminalsResult{Terminals: terminals}, nil
}

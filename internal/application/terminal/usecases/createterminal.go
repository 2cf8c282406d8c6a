package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/site"
	"medlog/internal/domain/terminal"
	apperrors "medlog/internal/shared/errors"
	"medlog/internal/shared/logger"
)

type CreateTerminalCommand struct {
	SiteID uint
	Name   string
}

type CreateTerminalResult struct {
	Terminal *terminal.Terminal
}

type CreateTerminalUseCase struct {
	terminalRepo terminal.Repository
	siteRepo     site.Repository
	logger       logger.Interface
	now          func() time.Time
}

func NewCreateTerminalUseCase(
	terminalRepo terminal.Repository,
	siteRepo site.Repository,
	logger logger.Interface,
) *CreateTerminalUseCase {
	return &CreateTerminalUseCase{
		terminalRepo: terminalRepo,
		siteRepo:     siteRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *CreateTerminalUseCase) Execute(ctx context.Context, cmd CreateTerminalCommand) (*CreateTerminalResult, error) {
	exists, err := uc.siteRepo.Exists(ctx, cmd.SiteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("site not found")
	}

	term, err := terminal.New(cmd.SiteID, cmd.Name, uc.now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.terminalRepo.Create(ctx, term); err != nil {
		return nil, err
	}

	uc.logger.Infow("terminal created", "terminal_id", term.ID, "site_id", term.SiteID, "name", term.Name)

	return &CreateTerminalResult{Terminal: term}, nil
}

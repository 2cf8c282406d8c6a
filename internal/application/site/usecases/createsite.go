package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/site"
	apperrors "medlog/internal/shared/errors"
	"medlog/internal/shared/logger"
)

type CreateSiteCommand struct {
	Name string
}

type CreateSiteResult struct {
	Site *site.Site
}

type CreateSiteUseCase struct {
	siteRepo site.Repository
	logger   logger.Interface
	now      func() time.Time
}

func NewCreateSiteUseCase(siteRepo site.Repository, logger logger.Interface) *CreateSiteUseCase {
	return &CreateSiteUseCase{
		siteRepo: siteRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *CreateSiteUseCase) Execute(ctx context.Context, cmd CreateSiteCommand) (*CreateSiteResult, error) {
	entity, err := site.New(cmd.Name, uc.now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.siteRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	uc.logger.Infow("site created", "site_id", entity.ID, "name", entity.Name)

	return &CreateSiteResult{Site: entity}, nil
}

package usecases

import (
	"context"
	"fmt"

	"medlog/internal/domain/site"
	"medlog/internal/domain/user"
	apperrors "medlog/internal/shared/errors"
	"medlog/internal/shared/logger"
)

// subjectForUser is the casbin subject for a user ID.
func subjectForUser(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

type GrantSiteAccessCommand struct {
	UserID uint
	SiteID uint
}

type GrantSiteAccessUseCase struct {
	userRepo user.Repository
	siteRepo site.Repository
	logger   logger.Interface
}

func NewGrantSiteAccessUseCase(
	userRepo user.Repository,
	siteRepo site.Repository,
	logger logger.Interface,
) *GrantSiteAccessUseCase {
	return &GrantSiteAccessUseCase{
		userRepo: userRepo,
		siteRepo: siteRepo,
		logger:   logger,
	}
}

func (uc *GrantSiteAccessUseCase) Execute(ctx context.Context, cmd GrantSiteAccessCommand) error {
	target, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if target.Role != user.RoleAuditor {
		return apperrors.NewValidationError("site access grants apply to auditors only")
	}

	exists, err := uc.siteRepo.Exists(ctx, cmd.SiteID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFoundError("site not found")
	}

	granted, err := uc.userRepo.GetAuditorSiteIDs(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	for _, id := range granted {
		if id == cmd.SiteID {
			return nil
		}
	}

	if err := uc.userRepo.GrantSiteAccess(ctx, cmd.UserID, cmd.SiteID); err != nil {
		return err
	}

	uc.logger.Infow("site access granted", "user_id", cmd.UserID, "site_id", cmd.SiteID)
	return nil
}

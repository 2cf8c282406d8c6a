package usecases

import (
	"context"

	"medlog/internal/domain/user"
	apperrors "medlog/internal/shared/errors"
)

type GetCurrentUserCommand struct {
	UserID uint
}

type GetCurrentUserResult struct {
	User *user.User
	// SiteIDs lists the sites granted to an auditor; empty for admins, who
	// see everything.
	SiteIDs []uint
}

// GetCurrentUserUseCase backs the "who am I" endpoint.
type GetCurrentUserUseCase struct {
	userRepo user.Repository
}

func NewGetCurrentUserUseCase(userRepo user.Repository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, cmd GetCurrentUserCommand) (*GetCurrentUserResult, error) {
	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, apperrors.NewUnauthorizedError("account is not available")
	}

	var siteIDs []uint
	if account.Role == user.RoleAuditor {
		siteIDs, err = uc.userRepo.GetAuditorSiteIDs(ctx, account.ID)
		if err != nil {
			return nil, err
		}
	}

	return &GetCurrentUserResult{User: account, SiteIDs: siteIDs}, nil
}

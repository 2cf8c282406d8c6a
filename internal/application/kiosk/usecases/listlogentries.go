package usecases

import (
	"context"

	"medlog/internal/domain/logentry"
	"medlog/internal/domain/user"
	apperrors "medlog/internal/shared/errors"
)

type ListLogEntriesCommand struct {
	// Requesting user; auditors are restricted to their granted sites.
	UserID   uint
	Role     user.Role
	SiteID   uint
	Page     int
	PageSize int
}

type ListLogEntriesResult struct {
	Entries []*logentry.Entry
	Total   int64
}

type ListLogEntriesUseCase struct {
	entryRepo logentry.Repository
	userRepo  user.Repository
}

func NewListLogEntriesUseCase(
	entryRepo logentry.Repository,
	userRepo user.Repository,
) *ListLogEntriesUseCase {
	return &ListLogEntriesUseCase{
		entryRepo: entryRepo,
		userRepo:  userRepo,
	}
}

func (uc *ListLogEntriesUseCase) Execute(ctx context.Context, cmd ListLogEntriesCommand) (*ListLogEntriesResult, error) {
	if cmd.Role == user.RoleAuditor {
		if cmd.SiteID == 0 {
			return nil, apperrors.NewValidationError("site is required")
		}

		requester, err := uc.userRepo.GetByID(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		granted, err := uc.userRepo.GetAuditorSiteIDs(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		if !requester.CanAccessSite(cmd.SiteID, granted) {
			return nil, apperrors.NewForbiddenError("no access to this site")
		}
	}

	entries, total, err := uc.entryRepo.List(ctx, logentry.ListFilter{
		SiteID:   cmd.SiteID,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ListLogEntriesResult{Entries: entries, Total: total}, nil
}

package usecases

import (
	"context"

	"medlog/internal/domain/site"
	"medlog/internal/domain/user"
)

type ListSitesCommand struct {
	// Requesting user; auditors only see their granted sites.
	UserID uint
	Role   user.Role
}

type ListSitesResult struct {
	Sites []*site.Site
}

type ListSitesUseCase struct {
	siteRepo site.Repository
	userRepo user.Repository
}

func NewListSitesUseCase(siteRepo site.Repository, userRepo user.Repository) *ListSitesUseCase {
	return &ListSitesUseCase{
		siteRepo: siteRepo,
		userRepo: userRepo,
	}
}

func (uc *ListSitesUseCase) Execute(ctx context.Context, cmd ListSitesCommand) (*ListSitesResult, error) {
	sites, err := uc.siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if cmd.Role == user.RoleAdmin {
		return &ListSitesResult{Sites: sites}, nil
	}

	grantedIDs, err := uc.userRepo.GetAuditorSiteIDs(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	granted := make(map[uint]bool, len(grantedIDs))
	for _, id := range grantedIDs {
		granted[id] = true
	}

	filtered := make([]*site.Site, 0, len(sites))
	for _, s := range sites {
		if granted[s.ID] {
			filtered = append(filtered, s)
		}
	}
	return &ListSitesResult{Sites: filtered}, nil
}

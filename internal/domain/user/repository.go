package user

import "context"

// Repository defines the interface for administrative user operations
type Repository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByEmail retrieves a user by email. Returns (nil, nil) when no user
	// matches so login can fail with a generic message.
	GetByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context) ([]*User, error)

	// GetAuditorSiteIDs returns the site IDs an auditor has been granted.
	GetAuditorSiteIDs(ctx context.Context, userID uint) ([]uint, error)

	// GrantSiteAccess grants an auditor access to a site.
	GrantSiteAccess(ctx context.Context, userID, siteID uint) error
}

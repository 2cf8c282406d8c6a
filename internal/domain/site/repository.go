package site

import "context"

// Repository defines the interface for site data operations
type Repository interface {
	Create(ctx context.Context, site *Site) error
	GetByID(ctx context.Context, id uint) (*Site, error)
	List(ctx context.Context) ([]*Site, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

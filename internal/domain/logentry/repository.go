package logentry

import (
	"context"
	"time"
)

// ListFilter represents filtering and pagination options for entry listing.
type ListFilter struct {
	SiteID   uint
	Page     int
	PageSize int
}

// Repository defines the interface for medicine log entry operations
type Repository interface {
	// Create persists an entry together with its items.
	Create(ctx context.Context, entry *Entry) error

	GetByID(ctx context.Context, id uint) (*Entry, error)

	// List retrieves a paginated list of entries, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Entry, int64, error)

	// PhotoPathsCreatedBefore returns the photo paths of entries older than
	// the cutoff so stored files can be removed together with the rows.
	PhotoPathsCreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error)

	// DeleteCreatedBefore purges entries older than the retention cutoff.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

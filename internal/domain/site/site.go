package site

import (
	"fmt"
	"strings"
	"time"
)

// Site is a tenant location. Terminals belong to exactly one site for
// their lifetime and every medicine log entry is scoped to a site.
type Site struct {
	ID        uint
	Name      string
	CreatedAt time.Time
}

func New(name string, now time.Time) (*Site, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("site name is required")
	}

	return &Site{
		Name:      name,
		CreatedAt: now,
	}, nil
}

package terminal

import (
	"fmt"
	"strings"
	"time"
)

// Terminal is a physical kiosk device record. A terminal belongs to exactly
// one site for its lifetime; there is deliberately no operation that moves a
// terminal between sites.
type Terminal struct {
	ID         uint
	SiteID     uint
	Name       string
	Active     bool
	LastSeenAt *time.Time
	CreatedAt  time.Time
}

func New(siteID uint, name string, now time.Time) (*Terminal, error) {
	if siteID == 0 {
		return nil, fmt.Errorf("site ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("terminal name is required")
	}

	return &Terminal{
		SiteID:    siteID,
		Name:      name,
		Active:    true,
		CreatedAt: now,
	}, nil
}

func (t *Terminal) Activate() {
	t.Active = true
}

func (t *Terminal) Deactivate() {
	t.Active = false
}

// TouchLastSeen records kiosk activity. Updated best-effort by the session
// resolver; never part of a pairing transaction.
func (t *Terminal) TouchLastSeen(now time.Time) {
	t.LastSeenAt = &now
}

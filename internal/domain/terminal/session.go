package terminal

import (
	"fmt"
	"time"
)

// Session is a long-lived, revocable credential that authenticates a paired
// device. Only the hash of the opaque token is stored; the raw value is
// returned to the device exactly once at pairing time.
type Session struct {
	ID          uint
	TerminalID  uint
	TokenHash   string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	RevokedAt   *time.Time
	CreatedByIP string
	UserAgent   string
}

// NewSession creates an active session for the terminal. expiresAt should be
// a far-future timestamp from FarFutureExpiry, not a storage-specific maximum.
func NewSession(terminalID uint, tokenHash string, now, expiresAt time.Time, createdByIP, userAgent string) (*Session, error) {
	if terminalID == 0 {
		return nil, fmt.Errorf("terminal ID is required")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}

	return &Session{
		TerminalID:  terminalID,
		TokenHash:   tokenHash,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		CreatedByIP: createdByIP,
		UserAgent:   userAgent,
	}, nil
}

// IsActive reports whether the session authenticates requests at the given
// instant: not revoked and not past its expiry.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

func (s *Session) Revoke(now time.Time) {
	if s.RevokedAt == nil {
		s.RevokedAt = &now
	}
}

// FarFutureExpiry returns a "never expires in practice" timestamp. A bounded
// offset is used instead of the maximum representable instant to stay inside
// every backend's timestamp range.
func FarFutureExpiry(now time.Time, years int) time.Time {
	if years <= 0 {
		years = 100
	}
	return now.AddDate(years, 0, 0)
}

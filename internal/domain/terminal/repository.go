package terminal

import (
	"context"
	"time"
)

// Repository defines the interface for terminal data operations
type Repository interface {
	Create(ctx context.Context, terminal *Terminal) error

	GetByID(ctx context.Context, id uint) (*Terminal, error)

	Update(ctx context.Context, terminal *Terminal) error

	// List retrieves terminals, optionally filtered by site (0 = all sites).
	List(ctx context.Context, siteID uint) ([]*Terminal, error)

	// TouchLastSeen updates only the last-seen timestamp. Callers treat
	// failures as non-fatal.
	TouchLastSeen(ctx context.Context, id uint, now time.Time) error
}

// PairingCodeRepository manages the lifecycle of single-use pairing codes.
type PairingCodeRepository interface {
	Create(ctx context.Context, code *PairingCode) error

	// GetByCode retrieves a code by exact value. When called inside a
	// transaction the row is locked for update so concurrent redemptions of
	// the same code serialize. Returns ErrCodeNotFound if no row matches.
	GetByCode(ctx context.Context, code string) (*PairingCode, error)

	// MarkUsed records redemption as a compare-and-swap: used_at is set only
	// if it is currently null. Returns ErrCodeAlreadyUsed when another
	// redemption won the race.
	MarkUsed(ctx context.Context, id uint, now time.Time, usedByIP string) error

	// ExpireActiveForTerminal force-expires all unused, unexpired codes for a
	// terminal, enforcing at most one live code per terminal.
	ExpireActiveForTerminal(ctx context.Context, terminalID uint, now time.Time) (int64, error)

	// DeleteTerminatedBefore removes used or expired codes older than the
	// cutoff. Returns the number of rows purged.
	DeleteTerminatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionRepository manages device session credentials.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// FindActiveByHash returns the session whose token hash matches and which
	// is active at the given instant. A revoked or lazily-expired row is
	// reported as absent (nil, nil), not as an error.
	FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error)

	// RevokeAllActive revokes every active session of the terminal and
	// returns how many were revoked.
	RevokeAllActive(ctx context.Context, terminalID uint, now time.Time) (int64, error)

	ListByTerminal(ctx context.Context, terminalID uint) ([]*Session, error)

	// DeleteRevokedBefore removes sessions revoked earlier than the cutoff.
	DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

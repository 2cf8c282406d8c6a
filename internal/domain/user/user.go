package user

import (
	"fmt"
	"strings"
	"time"
)

// Role determines what an administrative user may do. Admins manage sites,
// terminals and pairing; auditors read medicine logs for their granted sites.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAuditor
}

// User is an administrative account. Kiosk devices never authenticate as
// users; they hold terminal sessions instead.
type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

func New(email, name, passwordHash string, role Role, now time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
	}, nil
}

// VerifyPassword checks the candidate password against the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	return hasher.Verify(password, u.PasswordHash)
}

// CanAccessSite reports whether the user may read data for the site. Admins
// see everything; auditors only their granted sites.
func (u *User) CanAccessSite(siteID uint, grantedSiteIDs []uint) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, id := range grantedSiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}

// PasswordHasher abstracts password hashing for the user aggregate.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

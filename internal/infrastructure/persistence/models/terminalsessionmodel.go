package models

import "time"

// TerminalSessionModel represents the database persistence model for device
// sessions. Only the SHA-256 hash of the credential is stored.
type TerminalSessionModel struct {
	ID          uint   `gorm:"primarykey"`
	TerminalID  uint   `gorm:"not null;index"`
	TokenHash   string `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt   time.Time
	ExpiresAt   time.Time `gorm:"not null;index"`
	RevokedAt   *time.Time
	CreatedByIP string `gorm:"size:45"`
	UserAgent   string `gorm:"size:512"`
}

// TableName specifies the table name for GORM
func (TerminalSessionModel) TableName() string {
	return "terminal_sessions"
}

package models

import "time"

// PairingCodeModel represents the database persistence model for pairing
// codes. The unique index on Code spans all rows; terminated codes are kept
// for audit until cleanup removes them, so collisions with historical codes
// surface as constraint errors and are retried by the issuer.
type PairingCodeModel struct {
	ID         uint   `gorm:"primarykey"`
	TerminalID uint   `gorm:"not null;index"`
	Code       string `gorm:"size:16;not null;uniqueIndex"`
	CreatedAt  time.Time
	ExpiresAt  time.Time `gorm:"not null;index"`
	UsedAt     *time.Time
	UsedByIP   string `gorm:"size:45"`
}

// TableName specifies the table name for GORM
func (PairingCodeModel) TableName() string {
	return "terminal_pairing_codes"
}

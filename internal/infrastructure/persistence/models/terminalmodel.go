package models

import "time"

// TerminalModel represents the database persistence model for terminals.
type TerminalModel struct {
	ID         uint   `gorm:"primarykey"`
	SiteID     uint   `gorm:"not null;index"`
	Name       string `gorm:"size:255;not null"`
	Active     bool   `gorm:"not null;default:true"`
	LastSeenAt *time.Time
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (TerminalModel) TableName() string {
	return "terminals"
}

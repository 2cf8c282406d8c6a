package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEventModel represents the database persistence model for pairing
// audit events. Details is an event-specific JSON document.
type AuditEventModel struct {
	ID         uint           `gorm:"primarykey"`
	TerminalID uint           `gorm:"not null;index"`
	Type       string         `gorm:"size:50;not null;index"`
	Details    datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time      `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AuditEventModel) TableName() string {
	return "audit_events"
}

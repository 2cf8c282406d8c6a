package models

import "time"

// SiteModel represents the database persistence model for sites.
type SiteModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (SiteModel) TableName() string {
	return "sites"
}

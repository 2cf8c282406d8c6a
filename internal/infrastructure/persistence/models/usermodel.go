package models

import "time"

// UserModel represents the database persistence model for administrative
// users.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	Name         string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// AuditorSiteAccessModel grants an auditor read access to one site's logs.
type AuditorSiteAccessModel struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_auditor_site"`
	SiteID    uint `gorm:"not null;uniqueIndex:idx_auditor_site"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (AuditorSiteAccessModel) TableName() string {
	return "auditor_site_accesses"
}

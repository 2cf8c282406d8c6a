package models

import "time"

// LogEntryModel represents the database persistence model for medicine log
// entries.
type LogEntryModel struct {
	ID         uint      `gorm:"primarykey"`
	TerminalID uint      `gorm:"not null;index"`
	SiteID     uint      `gorm:"not null;index"`
	FirstName  string    `gorm:"size:100;not null"`
	LastName   string    `gorm:"size:100;not null"`
	CreatedAt  time.Time `gorm:"index"`

	Items []LogEntryItemModel `gorm:"foreignKey:EntryID"`
}

// TableName specifies the table name for GORM
func (LogEntryModel) TableName() string {
	return "medicine_log_entries"
}

// LogEntryItemModel is one medicine line within an entry.
type LogEntryItemModel struct {
	ID               uint   `gorm:"primarykey"`
	EntryID          uint   `gorm:"not null;index"`
	MedicineName     string `gorm:"size:255;not null"`
	Quantity         int    `gorm:"not null"`
	PhotoPath        string `gorm:"size:512"`
	PhotoContentType string `gorm:"size:100"`
	PhotoLength      int64
}

// TableName specifies the table name for GORM
func (LogEntryItemModel) TableName() string {
	return "medicine_log_entry_items"
}

package logentry

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one medicine administration recorded at a kiosk. It is always
// attributed to the terminal and site resolved from the device session,
// never to values supplied by the client.
type Entry struct {
	ID         uint
	TerminalID uint
	SiteID     uint
	FirstName  string
	LastName   string
	CreatedAt  time.Time
	Items      []Item
}

// Item is a single medicine line within an entry, with its photo evidence.
type Item struct {
	ID               uint
	EntryID          uint
	MedicineName     string
	Quantity         int
	PhotoPath        string
	PhotoContentType string
	PhotoLength      int64
}

func New(terminalID, siteID uint, firstName, lastName string, now time.Time) (*Entry, error) {
	if terminalID == 0 || siteID == 0 {
		return nil, fmt.Errorf("terminal and site are required")
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}

	return &Entry{
		TerminalID: terminalID,
		SiteID:     siteID,
		FirstName:  firstName,
		LastName:   lastName,
		CreatedAt:  now,
	}, nil
}

func (e *Entry) AddItem(medicineName string, quantity int, photoPath, photoContentType string, photoLength int64) error {
	medicineName = strings.TrimSpace(medicineName)
	if medicineName == "" {
		return fmt.Errorf("medicine name is required")
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	e.Items = append(e.Items, Item{
		MedicineName:     medicineName,
		Quantity:         quantity,
		PhotoPath:        photoPath,
		PhotoContentType: photoContentType,
		PhotoLength:      photoLength,
	})
	return nil
}

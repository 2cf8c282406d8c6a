package audit

import "time"

// Event types recorded for the pairing subsystem. Events give administrators
// a trail of credential lifecycle changes without ever containing a raw
// token or hash.
const (
	EventCodeIssued          = "code_issued"
	EventCodeRedeemed        = "code_redeemed"
	EventSessionsRevoked     = "sessions_revoked"
	EventTerminalActivated   = "terminal_activated"
	EventTerminalDeactivated = "terminal_deactivated"
)

// Event is one recorded occurrence. Details hold event-specific fields and
// are persisted as a JSON document.
type Event struct {
	ID         uint
	TerminalID uint
	Type       string
	Details    map[string]any
	CreatedAt  time.Time
}

func NewEvent(terminalID uint, eventType string, details map[string]any, now time.Time) *Event {
	return &Event{
		TerminalID: terminalID,
		Type:       eventType,
		Details:    details,
		CreatedAt:  now,
	}
}

package audit

import "context"

// Repository records and lists audit events. Recording is best-effort from
// the caller's perspective; failures must not abort the business operation.
type Repository interface {
	Record(ctx context.Context, event *Event) error
	ListByTerminal(ctx context.Context, terminalID uint, limit int) ([]*Event, error)
}

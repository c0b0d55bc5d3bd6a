package audit

import "context"

// Storage persists audit events. Implementations must treat stored events as
// immutable: append and query only, no update or delete.
type Storage interface {
	// Store persists a single event.
	Store(ctx context.Context, event Event) error

	// Query returns events matching the criteria in append order.
	Query(ctx context.Context, criteria Criteria) ([]Event, error)
}

package ratelimiter

import (
	"context"
	"time"
)

// Store defines the interface for attempt-counter storage backends.
type Store interface {
	// Failures returns the failure count inside the current window and the
	// time the window resets. An elapsed window reads as zero failures.
	Failures(ctx context.Context, key string, config Config) (count int, resetAt time.Time, err error)

	// RecordFailure increments the failure count, starting a new window if
	// the previous one elapsed. It returns the updated count and reset time.
	RecordFailure(ctx context.Context, key string, config Config) (count int, resetAt time.Time, err error)

	// Reset clears the counter for the given key.
	Reset(ctx context.Context, key string) error
}

package ratelimiter

import "time"

// Result contains the outcome of a rate limit check.
type Result struct {
	Limit     int       // Maximum failed attempts inside a window
	Remaining int       // Attempts left before denial
	ResetAt   time.Time // Time when the window resets
}

// Allowed reports whether the attempt should proceed.
func (r *Result) Allowed() bool {
	return r.Remaining > 0
}

// RetryAfter returns how long to wait before the next attempt.
// Returns 0 if the attempt was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Config defines the fixed-window attempt limit.
type Config struct {
	MaxAttempts int           // Failed attempts tolerated per window
	Window      time.Duration // Window length; counters reset when it elapses
}

// Package ratelimiter tracks failed attempts per key and denies further
// attempts once a configurable threshold is crossed within a time window.
//
// It backs authentication rate limiting: record a failure on every rejected
// credential, check Allow before verifying, and Reset on success. Denial is
// fail-closed: a denied key is refused before any verification work happens.
//
// Storage is pluggable through the Store interface; the package ships an
// in-memory store with background cleanup of stale entries.
//
// Basic usage:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//	    MaxAttempts: 5,
//	    Window:      15 * time.Minute,
//	})
//
//	res, _ := limiter.Allow(ctx, clientID)
//	if !res.Allowed() {
//	    // deny before verifying credentials
//	}
package ratelimiter

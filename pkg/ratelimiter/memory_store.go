package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// window tracks failures for one key inside the current window.
type window struct {
	failures   int
	startedAt  time.Time
	lastAccess time.Time // Used by cleanup to identify stale entries
}

// MemoryStore implements Store using in-memory storage.
type MemoryStore struct {
	mu      sync.RWMutex
	windows map[string]*window

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for removing stale entries.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// NewMemoryStore creates a new in-memory store with optional cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

// Failures returns the failure count for the current window.
func (ms *MemoryStore) Failures(ctx context.Context, key string, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	w, exists := ms.windows[key]
	if !exists || now.Sub(w.startedAt) >= config.Window {
		return 0, now.Add(config.Window), nil
	}

	w.lastAccess = now
	return w.failures, w.startedAt.Add(config.Window), nil
}

// RecordFailure increments the failure counter for the current window.
func (ms *MemoryStore) RecordFailure(ctx context.Context, key string, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	w, exists := ms.windows[key]
	if !exists || now.Sub(w.startedAt) >= config.Window {
		w = &window{startedAt: now}
		ms.windows[key] = w
	}

	w.failures++
	w.lastAccess = now
	return w.failures, w.startedAt.Add(config.Window), nil
}

// Reset clears the counter for the given key.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.windows, key)
	return nil
}

// cleanup runs periodically to remove stale entries.
func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeStale()
		case <-ms.stopCleanup:
			return
		}
	}
}

// removeStale drops entries that haven't been touched recently to prevent
// unbounded growth from one-off client ids.
func (ms *MemoryStore) removeStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	staleThreshold := 1 * time.Hour

	for key, w := range ms.windows {
		if now.Sub(w.lastAccess) > staleThreshold {
			delete(ms.windows, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	select {
	case <-ms.stopCleanup:
		// Already closed
	default:
		close(ms.stopCleanup)
	}
}

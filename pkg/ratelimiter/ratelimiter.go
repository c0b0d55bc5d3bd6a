package ratelimiter

import (
	"context"
	"fmt"
)

// Limiter is a per-key failed-attempt limiter.
type Limiter interface {
	// Allow checks whether the key is still under the failure threshold.
	Allow(ctx context.Context, key string) (*Result, error)

	// RecordFailure counts one failed attempt against the key.
	RecordFailure(ctx context.Context, key string) (*Result, error)

	// Reset clears the key's failure counter, typically after a success.
	Reset(ctx context.Context, key string) error
}

// AttemptLimiter implements Limiter over a fixed-window counter store.
type AttemptLimiter struct {
	store  Store
	config Config
}

// New creates a new attempt limiter.
func New(store Store, config Config) (*AttemptLimiter, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &AttemptLimiter{
		store:  store,
		config: config,
	}, nil
}

func (l *AttemptLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := l.store.Failures(ctx, key, l.config)
	if err != nil {
		return nil, err
	}

	return &Result{
		Limit:     l.config.MaxAttempts,
		Remaining: l.config.MaxAttempts - count,
		ResetAt:   resetAt,
	}, nil
}

func (l *AttemptLimiter) RecordFailure(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := l.store.RecordFailure(ctx, key, l.config)
	if err != nil {
		return nil, err
	}

	return &Result{
		Limit:     l.config.MaxAttempts,
		Remaining: l.config.MaxAttempts - count,
		ResetAt:   resetAt,
	}, nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

func (c Config) validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

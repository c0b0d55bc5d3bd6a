package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataScienceBioLab/accesskit/pkg/ratelimiter"
)

func newTestLimiter(t *testing.T, cfg ratelimiter.Config) *ratelimiter.AttemptLimiter {
	t.Helper()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	l, err := ratelimiter.New(store, cfg)
	require.NoError(t, err)
	return l
}

func TestNew_ConfigValidation(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	tests := []struct {
		name    string
		config  ratelimiter.Config
		wantErr bool
	}{
		{
			name:   "valid",
			config: ratelimiter.Config{MaxAttempts: 5, Window: time.Minute},
		},
		{
			name:    "zero attempts",
			config:  ratelimiter.Config{MaxAttempts: 0, Window: time.Minute},
			wantErr: true,
		},
		{
			name:    "negative attempts",
			config:  ratelimiter.Config{MaxAttempts: -1, Window: time.Minute},
			wantErr: true,
		},
		{
			name:    "zero window",
			config:  ratelimiter.Config{MaxAttempts: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ratelimiter.New(store, tt.config)
			if tt.wantErr {
				assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAttemptLimiter_FailureCounting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLimiter(t, ratelimiter.Config{MaxAttempts: 3, Window: time.Minute})

	res, err := l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 3, res.Remaining)

	for i := 1; i <= 2; i++ {
		res, err = l.RecordFailure(ctx, "client")
		require.NoError(t, err)
		assert.Equal(t, 3-i, res.Remaining)
		assert.True(t, res.Allowed())
	}

	res, err = l.RecordFailure(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)
	assert.False(t, res.Allowed())

	res, err = l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
}

func TestAttemptLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLimiter(t, ratelimiter.Config{MaxAttempts: 1, Window: time.Minute})

	_, err := l.RecordFailure(ctx, "noisy")
	require.NoError(t, err)

	res, err := l.Allow(ctx, "noisy")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	res, err = l.Allow(ctx, "quiet")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestAttemptLimiter_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLimiter(t, ratelimiter.Config{MaxAttempts: 1, Window: time.Minute})

	_, err := l.RecordFailure(ctx, "client")
	require.NoError(t, err)

	res, err := l.Allow(ctx, "client")
	require.NoError(t, err)
	require.False(t, res.Allowed())

	require.NoError(t, l.Reset(ctx, "client"))

	res, err = l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 1, res.Remaining)
}

func TestAttemptLimiter_WindowExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLimiter(t, ratelimiter.Config{MaxAttempts: 1, Window: 30 * time.Millisecond})

	_, err := l.RecordFailure(ctx, "client")
	require.NoError(t, err)

	res, err := l.Allow(ctx, "client")
	require.NoError(t, err)
	require.False(t, res.Allowed())

	time.Sleep(50 * time.Millisecond)

	res, err = l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "counter expires with its window")
}

func TestResult_RetryAfter(t *testing.T) {
	t.Parallel()

	res := &ratelimiter.Result{
		Limit:     3,
		Remaining: 0,
		ResetAt:   time.Now().Add(time.Minute),
	}

	retry := res.RetryAfter()
	assert.Greater(t, retry, 50*time.Second)
	assert.LessOrEqual(t, retry, time.Minute)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := ratelimiter.Config{MaxAttempts: 1000, Window: time.Minute}
	l := newTestLimiter(t, cfg)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := l.RecordFailure(ctx, "shared")
				assert.NoError(t, err)
				_, err = l.Allow(ctx, "shared")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	res, err := l.Allow(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxAttempts-workers*20, res.Remaining)
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	store.Close()
	store.Close()
}

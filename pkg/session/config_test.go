package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataScienceBioLab/accesskit/pkg/session"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, time.Hour, cfg.TokenValidity)
	assert.Equal(t, 2*time.Hour, cfg.KeyValidity)
	assert.Equal(t, 5, cfg.MaxAuthAttempts)
	assert.Equal(t, 15*time.Minute, cfg.AttemptWindow)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("SESSION_TOKEN_VALIDITY", "30m")
	t.Setenv("SESSION_CLEANUP_INTERVAL", "0")

	m, err := session.NewFromEnv(session.WithVerifier(session.AllowAllVerifier))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m)
}

package session

import (
	"log/slog"
	"time"

	"github.com/DataScienceBioLab/accesskit/pkg/audit"
	"github.com/DataScienceBioLab/accesskit/pkg/ratelimiter"
	"github.com/DataScienceBioLab/accesskit/pkg/rbac"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithConfig sets custom configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithRBAC sets the role graph the manager resolves permissions against.
func WithRBAC(r *rbac.Manager) Option {
	return func(m *Manager) {
		m.rbac = r
	}
}

// WithVerifier sets the credential verifier. Required.
func WithVerifier(v CredentialVerifier) Option {
	return func(m *Manager) {
		m.verifier = v
	}
}

// WithDefaultRoles names the roles assigned when credentials request none.
func WithDefaultRoles(roleNames ...string) Option {
	return func(m *Manager) {
		m.defaultRoles = roleNames
	}
}

// WithMasterKey sets the 32-byte master key session keys derive from.
// A random key is generated when none is given.
func WithMasterKey(key []byte) Option {
	return func(m *Manager) {
		m.masterKey = key
	}
}

// WithAttemptLimiter sets a custom failed-attempt limiter.
func WithAttemptLimiter(l ratelimiter.Limiter) Option {
	return func(m *Manager) {
		m.limiter = l
	}
}

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithAuditLogger records authentication and authorization events.
func WithAuditLogger(al audit.Logger) Option {
	return func(m *Manager) {
		m.audit = al
	}
}

// WithClock sets the time source, for deterministic expiry in tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

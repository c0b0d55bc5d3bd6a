package session

import (
	"time"

	"github.com/DataScienceBioLab/accesskit/pkg/config"
)

// Config holds session manager configuration.
type Config struct {
	// TokenValidity bounds session lifetime from creation.
	TokenValidity time.Duration `env:"SESSION_TOKEN_VALIDITY" envDefault:"1h"`

	// KeyValidity bounds session-key lifetime, independent of the session.
	KeyValidity time.Duration `env:"SESSION_KEY_VALIDITY" envDefault:"2h"`

	// MaxAuthAttempts is the failed-attempt threshold per client id.
	MaxAuthAttempts int `env:"SESSION_MAX_AUTH_ATTEMPTS" envDefault:"5"`

	// AttemptWindow is the window the failed-attempt counter covers.
	AttemptWindow time.Duration `env:"SESSION_ATTEMPT_WINDOW" envDefault:"15m"`

	// CleanupInterval for expired sessions and keys (0 to disable).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns default session manager configuration.
func DefaultConfig() Config {
	return Config{
		TokenValidity:   time.Hour,
		KeyValidity:     2 * time.Hour,
		MaxAuthAttempts: 5,
		AttemptWindow:   15 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewFromEnv creates a Manager configured from environment variables.
func NewFromEnv(opts ...Option) (*Manager, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/DataScienceBioLab/accesskit/pkg/rbac"
)

// Session is a time-bounded authorization artifact produced by successful
// authentication.
type Session struct {
	ID            uuid.UUID
	Token         string
	ClientID      string
	SecurityLevel rbac.SecurityLevel
	Status        Status
	CreatedAt     time.Time
	ExpiresAt     time.Time
	ActiveRoles   []string
}

// IsExpired reports whether the session is past its expiry at the given time.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// transition moves the session to the target status if the lifecycle allows.
func (s *Session) transition(to Status) error {
	if !s.Status.canTransition(to) {
		return ErrInvalidTransition
	}
	s.Status = to
	return nil
}

// clone returns an independent copy safe to hand to callers.
func (s *Session) clone() *Session {
	c := *s
	c.ActiveRoles = slices.Clone(s.ActiveRoles)
	return &c
}

// Credentials carries an authentication request.
type Credentials struct {
	ClientID string
	Secret   string

	// RequestedRoles names the roles to activate for the session. When
	// empty, the manager's default roles apply.
	RequestedRoles []string

	// SecurityLevel the session should operate at.
	SecurityLevel rbac.SecurityLevel
}

// CredentialVerifier decides whether credentials are valid. The package does
// not mandate a verification strategy; callers supply their own.
type CredentialVerifier interface {
	Verify(ctx context.Context, creds Credentials) error
}

// VerifierFunc adapts a function to the CredentialVerifier interface.
type VerifierFunc func(ctx context.Context, creds Credentials) error

func (f VerifierFunc) Verify(ctx context.Context, creds Credentials) error {
	return f(ctx, creds)
}

// AllowAllVerifier accepts any credentials. It exists for tests and local
// development only; production deployments must supply real verification.
var AllowAllVerifier = VerifierFunc(func(context.Context, Credentials) error {
	return nil
})

// generateToken creates a cryptographically secure session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

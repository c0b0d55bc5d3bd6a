package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DataScienceBioLab/accesskit/pkg/audit"
	"github.com/DataScienceBioLab/accesskit/pkg/logger"
	"github.com/DataScienceBioLab/accesskit/pkg/ratelimiter"
	"github.com/DataScienceBioLab/accesskit/pkg/rbac"
	"github.com/DataScienceBioLab/accesskit/pkg/secrets"
)

// sessionKey is a per-session symmetric key with its own expiry, independent
// from the session it encrypts data for.
type sessionKey struct {
	key       []byte
	expiresAt time.Time
}

// Manager authenticates credentials into time-bounded sessions, authorizes
// tokens against security levels and permissions, and provides per-session
// authenticated encryption. It wraps an rbac.Manager for role resolution.
//
// Sessions and session keys live behind separate locks because their sweeps
// are independent.
type Manager struct {
	config       Config
	rbac         *rbac.Manager
	verifier     CredentialVerifier
	limiter      ratelimiter.Limiter
	limiterStore *ratelimiter.MemoryStore // owned only when the default limiter is used
	masterKey    []byte
	defaultRoles []string
	log          *slog.Logger
	audit        audit.Logger
	clock        func() time.Time

	sessMu   sync.RWMutex
	sessions map[string]*Session   // by token
	byID     map[uuid.UUID]string  // session id -> token

	keyMu sync.RWMutex
	keys  map[uuid.UUID]sessionKey

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a session manager. A credential verifier is required; the
// permissive AllowAllVerifier must be opted into explicitly.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config:   DefaultConfig(),
		clock:    time.Now,
		sessions: make(map[string]*Session),
		byID:     make(map[uuid.UUID]string),
		keys:     make(map[uuid.UUID]sessionKey),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.verifier == nil {
		return nil, ErrNoVerifier
	}

	if m.rbac == nil {
		m.rbac = rbac.NewManager()
	}

	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.log = m.log.With(logger.Component("session"))

	if m.masterKey == nil {
		key, err := secrets.GenerateKey()
		if err != nil {
			return nil, errors.Join(ErrCryptoFailure, err)
		}
		m.masterKey = key
	} else if err := secrets.ValidateKey(m.masterKey); err != nil {
		return nil, errors.Join(ErrCryptoFailure, err)
	}

	if m.limiter == nil {
		store := ratelimiter.NewMemoryStore()
		limiter, err := ratelimiter.New(store, ratelimiter.Config{
			MaxAttempts: m.config.MaxAuthAttempts,
			Window:      m.config.AttemptWindow,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
		m.limiter = limiter
		m.limiterStore = store
	}

	if m.config.CleanupInterval > 0 {
		go m.cleanupLoop()
	}

	return m, nil
}

// RBAC exposes the wrapped role graph manager.
func (m *Manager) RBAC() *rbac.Manager {
	return m.rbac
}

// Authenticate verifies credentials and creates an active session. The
// per-client failed-attempt counter is consulted first and fails closed
// before any verification work; each rejection counts against it and a
// success resets it.
func (m *Manager) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	res, err := m.limiter.Allow(ctx, creds.ClientID)
	if err != nil {
		return nil, err
	}
	if !res.Allowed() {
		m.logAuthFailure(ctx, creds.ClientID, ErrTooManyAttempts)
		return nil, errors.Join(ErrAuthenticationFailed, ErrTooManyAttempts)
	}

	if err := m.verifier.Verify(ctx, creds); err != nil {
		if _, lerr := m.limiter.RecordFailure(ctx, creds.ClientID); lerr != nil {
			m.log.Warn("failed to record auth failure", logger.Error(lerr))
		}
		m.logAuthFailure(ctx, creds.ClientID, err)
		return nil, errors.Join(ErrAuthenticationFailed, err)
	}

	if err := m.limiter.Reset(ctx, creds.ClientID); err != nil {
		m.log.Warn("failed to reset attempt counter", logger.Error(err))
	}

	roleNames := creds.RequestedRoles
	if len(roleNames) == 0 {
		roleNames = m.defaultRoles
	}

	// Resolve every name before assigning any, so a failed authentication
	// leaves the role graph untouched.
	roleIDs := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		role, ok := m.rbac.GetRoleByName(name)
		if !ok {
			err := errors.Join(rbac.ErrRoleNotFound, fmt.Errorf("role named %q does not exist", name))
			m.logAuthFailure(ctx, creds.ClientID, err)
			return nil, errors.Join(ErrAuthenticationFailed, err)
		}
		roleIDs = append(roleIDs, role.ID)
	}
	for _, id := range roleIDs {
		if err := m.rbac.AssignRole(creds.ClientID, id); err != nil {
			m.logAuthFailure(ctx, creds.ClientID, err)
			return nil, errors.Join(ErrAuthenticationFailed, err)
		}
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := m.clock()
	sess := &Session{
		ID:            uuid.New(),
		Token:         token,
		ClientID:      creds.ClientID,
		SecurityLevel: creds.SecurityLevel,
		Status:        StatusAuthenticating,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.config.TokenValidity),
		ActiveRoles:   append([]string(nil), roleNames...),
	}

	key, err := secrets.DeriveKey(m.masterKey, sess.ID.String())
	if err != nil {
		return nil, errors.Join(ErrCryptoFailure, err)
	}

	if err := sess.transition(StatusActive); err != nil {
		return nil, err
	}

	m.sessMu.Lock()
	m.sessions[token] = sess
	m.byID[sess.ID] = token
	m.sessMu.Unlock()

	m.keyMu.Lock()
	m.keys[sess.ID] = sessionKey{key: key, expiresAt: now.Add(m.config.KeyValidity)}
	m.keyMu.Unlock()

	m.log.Info("session created",
		logger.ClientID(creds.ClientID),
		logger.SessionID(sess.ID),
		slog.String("security_level", sess.SecurityLevel.String()))

	if m.audit != nil {
		if err := m.audit.Log(ctx, "session.authenticated",
			audit.WithActor(creds.ClientID),
			audit.WithResource("session", sess.ID.String()),
		); err != nil {
			m.log.Warn("audit log append failed", logger.Error(err))
		}
	}

	return sess.clone(), nil
}

// Authorize resolves a token into its session and gates it against a
// required security level and, when given, a permission resolved through the
// role graph.
func (m *Manager) Authorize(ctx context.Context, token string, requiredLevel rbac.SecurityLevel, perm *rbac.Permission) (*Session, error) {
	// Invalidate and the cleanup sweep mutate stored sessions in place under
	// sessMu, so the gates below run on a copy taken while holding the lock.
	m.sessMu.RLock()
	stored, ok := m.sessions[token]
	var sess *Session
	if ok {
		sess = stored.clone()
	}
	m.sessMu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if sess.IsExpired(m.clock()) {
		m.expireSession(token)
		return nil, ErrSessionExpired
	}

	if !sess.SecurityLevel.Meets(requiredLevel) {
		m.logAuthzFailure(ctx, sess, ErrSecurityViolation)
		return nil, ErrSecurityViolation
	}

	if perm != nil && !m.rbac.HasPermission(sess.ClientID, *perm) {
		m.logAuthzFailure(ctx, sess, ErrPermissionDenied)
		return nil, ErrPermissionDenied
	}

	return sess, nil
}

// Invalidate destroys a session before its natural expiry.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	m.sessMu.Lock()
	defer m.sessMu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}

	if err := sess.transition(StatusInvalidated); err != nil {
		return err
	}

	delete(m.sessions, token)
	delete(m.byID, sess.ID)

	m.log.Info("session invalidated", logger.SessionID(sess.ID), logger.ClientID(sess.ClientID))
	return nil
}

// GetSession returns a copy of the session for the token.
func (m *Manager) GetSession(token string) (*Session, bool) {
	m.sessMu.RLock()
	defer m.sessMu.RUnlock()

	sess, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	return sess.clone(), true
}

// Encrypt seals data under the session's key. Output is nonce-prefixed
// ciphertext+tag; a fresh nonce is drawn per call.
func (m *Manager) Encrypt(sessionID uuid.UUID, data []byte) ([]byte, error) {
	key, ok := m.sessionKey(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	out, err := secrets.Encrypt(key, data)
	if err != nil {
		return nil, errors.Join(ErrCryptoFailure, err)
	}
	return out, nil
}

// Decrypt opens ciphertext produced by Encrypt for the same session. It
// fails closed with ErrCryptoFailure on unknown session, truncated input, or
// tag verification failure, without distinguishing the cause.
func (m *Manager) Decrypt(sessionID uuid.UUID, data []byte) ([]byte, error) {
	key, ok := m.sessionKey(sessionID)
	if !ok {
		return nil, ErrCryptoFailure
	}

	out, err := secrets.Decrypt(key, data)
	if err != nil {
		return nil, ErrCryptoFailure
	}
	return out, nil
}

// sessionKey returns the session's key if present and unexpired.
func (m *Manager) sessionKey(sessionID uuid.UUID) ([]byte, bool) {
	m.keyMu.RLock()
	defer m.keyMu.RUnlock()

	sk, ok := m.keys[sessionID]
	if !ok || m.clock().After(sk.expiresAt) {
		return nil, false
	}
	return sk.key, true
}

// CleanupExpired sweeps expired sessions and expired session keys. The two
// collections use their own expiries and are swept independently. It returns
// how many of each were removed.
func (m *Manager) CleanupExpired(ctx context.Context) (sessions, keys int) {
	now := m.clock()

	m.sessMu.Lock()
	for token, sess := range m.sessions {
		if sess.IsExpired(now) {
			// Best effort: a session stuck mid-handshake is removed regardless.
			_ = sess.transition(StatusExpired)
			delete(m.sessions, token)
			delete(m.byID, sess.ID)
			sessions++
		}
	}
	m.sessMu.Unlock()

	m.keyMu.Lock()
	for id, sk := range m.keys {
		if now.After(sk.expiresAt) {
			delete(m.keys, id)
			keys++
		}
	}
	m.keyMu.Unlock()

	if sessions > 0 || keys > 0 {
		m.log.Debug("cleanup swept expired entries",
			slog.Int("sessions", sessions),
			slog.Int("keys", keys))
	}

	return sessions, keys
}

// ActiveSessions returns the number of stored sessions.
func (m *Manager) ActiveSessions() int {
	m.sessMu.RLock()
	defer m.sessMu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine and the default limiter store. Safe to
// call multiple times.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
		if m.limiterStore != nil {
			m.limiterStore.Close()
		}
	})
	return nil
}

// expireSession flips a session to expired and removes it.
func (m *Manager) expireSession(token string) {
	m.sessMu.Lock()
	defer m.sessMu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return
	}
	_ = sess.transition(StatusExpired)
	delete(m.sessions, token)
	delete(m.byID, sess.ID)
}

// cleanupLoop runs periodic cleanup of expired sessions and keys.
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupExpired(context.Background())
		case <-m.done:
			return
		}
	}
}

func (m *Manager) logAuthFailure(ctx context.Context, clientID string, cause error) {
	m.log.Warn("authentication failed", logger.ClientID(clientID), logger.Error(cause))

	if m.audit != nil {
		if err := m.audit.LogError(ctx, "session.authentication_failed", cause,
			audit.WithActor(clientID),
			audit.WithResult(audit.ResultFailure),
		); err != nil {
			m.log.Warn("audit log append failed", logger.Error(err))
		}
	}
}

func (m *Manager) logAuthzFailure(ctx context.Context, sess *Session, cause error) {
	m.log.Warn("authorization denied",
		logger.Group("session",
			logger.ClientID(sess.ClientID),
			logger.SessionID(sess.ID)),
		logger.Error(cause))

	if m.audit != nil {
		if err := m.audit.LogError(ctx, "session.authorization_denied", cause,
			audit.WithActor(sess.ClientID),
			audit.WithResource("session", sess.ID.String()),
		); err != nil {
			m.log.Warn("audit log append failed", logger.Error(err))
		}
	}
}

package session

import "errors"

var (
	// ErrAuthenticationFailed indicates credential rejection.
	ErrAuthenticationFailed = errors.New("session.authentication_failed")

	// ErrTooManyAttempts indicates the per-client failed-attempt limit was
	// exhausted; verification is not attempted.
	ErrTooManyAttempts = errors.New("session.too_many_attempts")

	// ErrSessionNotFound indicates no session was found for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSecurityViolation indicates the session's security level is below
	// the required level.
	ErrSecurityViolation = errors.New("session.security_violation")

	// ErrPermissionDenied indicates the resolver denied the required
	// permission for the session's principal.
	ErrPermissionDenied = errors.New("session.permission_denied")

	// ErrCryptoFailure indicates key construction, encryption, or
	// decryption failure. Decryption failures deliberately carry no detail
	// about the cause.
	ErrCryptoFailure = errors.New("session.crypto_failure")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrNoVerifier indicates no credential verifier was configured.
	ErrNoVerifier = errors.New("session.no_verifier")

	// ErrInvalidTransition indicates a session status change that the
	// lifecycle does not allow.
	ErrInvalidTransition = errors.New("session.invalid_status_transition")
)

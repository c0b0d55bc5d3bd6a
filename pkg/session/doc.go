// Package session turns long-lived role assignments into short-lived,
// security-level-scoped session tokens, and provides per-session
// authenticated encryption.
//
// The Manager wraps an rbac.Manager. Authenticate verifies credentials
// (behind a per-client failed-attempt limit), assigns roles, and issues a
// session with a fresh symmetric key derived from the manager's master key.
// Authorize gates a token against a required security level and, optionally,
// a permission resolved through the role graph.
//
// Sessions move through a fixed lifecycle:
//
//	authenticating -> active -> (expired | invalidated)
//
// Session keys have their own expiry, independent from the session they
// encrypt for; CleanupExpired sweeps both collections separately.
//
// Basic usage:
//
//	m, err := session.New(
//	    session.WithRBAC(rbacManager),
//	    session.WithVerifier(myVerifier),
//	    session.WithDefaultRoles("viewer"),
//	)
//	defer m.Close()
//
//	sess, err := m.Authenticate(ctx, session.Credentials{
//	    ClientID: "alice",
//	    Secret:   "s3cret",
//	})
//
//	sess, err = m.Authorize(ctx, sess.Token, rbac.LevelInternal, nil)
//
//	ciphertext, err := m.Encrypt(sess.ID, []byte("payload"))
package session

// Package accesskit provides role-based access control and session security
// building blocks for Go services.
//
// The module is organized as independent packages under pkg/; there is no
// framework layer and no shared global state. Each package takes its
// dependencies explicitly and can be used on its own.
//
// Packages:
//
//   - pkg/rbac: role graph with inheritance, permission resolution,
//     context-aware matching, and delegation
//   - pkg/session: authentication into time-bounded sessions, authorization
//     gates, and per-session encryption
//   - pkg/secrets: AES-256-GCM encryption and HKDF key derivation
//   - pkg/ratelimiter: fixed-window failed-attempt limiting
//   - pkg/audit: append-only audit event logging
//   - pkg/config: environment-based configuration loading
//   - pkg/logger: shared slog attribute helpers
//
// Basic usage:
//
//	roles := rbac.NewManager()
//	editor, err := roles.CreateRole("editor", "content editors",
//		[]rbac.Permission{rbac.NewPermission("document", rbac.ActionUpdate)}, nil)
//	if err != nil {
//		return err
//	}
//
//	sessions, err := session.New(
//		session.WithRBAC(roles),
//		session.WithVerifier(myVerifier),
//		session.WithDefaultRoles(editor.Name),
//	)
//	if err != nil {
//		return err
//	}
//	defer sessions.Close()
//
//	sess, err := sessions.Authenticate(ctx, session.Credentials{
//		ClientID: "service-a",
//		Secret:   secret,
//	})
package accesskit

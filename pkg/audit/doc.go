// Package audit records security-relevant actions as immutable events:
// authentication attempts, authorization decisions, and role delegations.
//
// Events flow through a Logger into a Storage backend. The package ships an
// append-only in-memory storage; persistent backends implement the Storage
// interface.
//
// Basic usage:
//
//	storage := audit.NewMemoryStorage()
//	log := audit.NewLogger(storage)
//
//	_ = log.Log(ctx, "session.authenticated",
//	    audit.WithActor(clientID),
//	    audit.WithResource("session", sessionID),
//	)
//
//	events, _ := storage.Query(ctx, audit.Criteria{Action: "session.authenticated"})
package audit

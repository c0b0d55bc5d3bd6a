// Package rbac implements role-based access control with role inheritance,
// contextual permission matching, and auditable role delegation.
//
// Unlike flat role-to-permission maps, this package models roles as a graph:
// each role carries its own permissions plus a set of parent roles it inherits
// from. Creation keeps the graph acyclic: parents must exist before children,
// so no new role can appear in its own ancestry. CheckInheritanceCycles and
// ValidateGraph audit stored data explicitly, and every traversal also tracks
// a visited set as a safety net against corrupted data reaching the store
// through a future persistence layer.
//
// Key concepts:
//
//   - Permission: an allowed (resource, action) pair, optionally narrowed by a
//     resource id, a scope (own/group/all/pattern) and a list of conditions
//     (time window, network range, minimum security level, attribute match)
//   - Role: a named, identified bundle of permissions plus parent roles
//   - Context: the request-time facts (user, owner, network address, time,
//     security level, attributes) that conditional checks evaluate against
//   - Delegation: a holder of a delegable role granting it to another user,
//     recorded in an append-only audit trail
//
// Basic usage:
//
//	m := rbac.NewManager()
//
//	read := rbac.NewPermission("doc", rbac.ActionRead)
//	viewer, err := m.CreateRole("viewer", "read-only access", []rbac.Permission{read}, nil)
//
//	edit := rbac.NewPermission("doc", rbac.ActionUpdate)
//	editor, err := m.CreateRole("editor", "", []rbac.Permission{edit}, []string{viewer.ID})
//
//	if err := m.AssignRole("alice", editor.ID); err != nil {
//	    // Handle assignment failure
//	}
//
//	m.HasPermission("alice", read) // true, inherited from viewer
//
// Contextual checks add request-time facts:
//
//	perm := rbac.NewPermission("doc", rbac.ActionRead)
//	perm.Scope = rbac.ScopeOwn
//
//	now := time.Now()
//	m.HasPermissionWithContext("alice", perm, &rbac.Context{
//	    UserID:          "alice",
//	    ResourceOwnerID: "alice",
//	    CurrentTime:     &now,
//	})
//
// The Manager is safe for concurrent use. Read paths (lookups, permission
// checks) never fail; absence of data yields an empty result, not an error.
package rbac

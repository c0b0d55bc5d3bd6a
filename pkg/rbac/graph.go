package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/DataScienceBioLab/accesskit/pkg/logger"
)

// CheckInheritanceCycles reports whether the role's parent chain, directly or
// transitively, reaches back to the role itself. A dangling parent reference
// is an error in its own right, distinct from a cycle: it signals corruption,
// not legitimately empty data.
func (m *Manager) CheckInheritanceCycles(roleID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.detectCycleLocked(roleID, make(map[string]bool), make(map[string]bool))
}

// detectCycleLocked runs a DFS with a recursion path and a fully-explored
// set. A role reappearing on the current path, not merely previously visited,
// signals a cycle. The path entry is removed on backtrack so sibling branches
// do not falsely share path membership. Caller holds mu.
func (m *Manager) detectCycleLocked(roleID string, path, visited map[string]bool) (bool, error) {
	role, ok := m.roles[roleID]
	if !ok {
		return false, errors.Join(ErrInvalidRole, fmt.Errorf("role %q referenced but not found", roleID))
	}

	path[roleID] = true
	visited[roleID] = true

	for _, parent := range role.ParentRoles {
		if path[parent] {
			return true, nil
		}
		if visited[parent] {
			continue
		}
		cyclic, err := m.detectCycleLocked(parent, path, visited)
		if err != nil || cyclic {
			return cyclic, err
		}
	}

	delete(path, roleID)
	return false, nil
}

// ValidateGraph audits the whole role graph. It returns an error joined with
// ErrCircularInheritance for the first cyclic role found, or the dangling
// reference error if the graph contains one.
func (m *Manager) ValidateGraph() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visited := make(map[string]bool)
	for id := range m.roles {
		if visited[id] {
			continue
		}
		cyclic, err := m.detectCycleLocked(id, make(map[string]bool), visited)
		if err != nil {
			return err
		}
		if cyclic {
			return errors.Join(ErrCircularInheritance, fmt.Errorf("role %q is its own ancestor", id))
		}
	}
	return nil
}

// collectPermissionsLocked merges the role's permissions and those of all
// transitively reachable parents into acc. A plain visited set suffices here:
// any previously visited role's permissions are already merged, which also
// guarantees single-visit termination over diamond-shaped graphs. Caller
// holds mu.
func (m *Manager) collectPermissionsLocked(roleID string, acc *PermissionSet, visited map[string]bool, depth int) error {
	if visited[roleID] || depth > MaxInheritanceDepth {
		return nil
	}
	visited[roleID] = true

	role, ok := m.roles[roleID]
	if !ok {
		return errors.Join(ErrInvalidRole, fmt.Errorf("role %q referenced but not found", roleID))
	}

	acc.Merge(role.Permissions)

	for _, parent := range role.ParentRoles {
		if err := m.collectPermissionsLocked(parent, acc, visited, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// GetUserPermissions computes the transitive closure of permissions reachable
// from the user's assigned roles. It never fails: no assignments yields an
// empty set, and a dangling parent reference is logged and skipped rather
// than surfaced, since read paths treat absence as normal.
func (m *Manager) GetUserPermissions(userID string) *PermissionSet {
	ids := m.assignedRoleIDs(userID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	acc := NewPermissionSet()
	visited := make(map[string]bool)
	for _, id := range ids {
		if err := m.collectPermissionsLocked(id, acc, visited, 0); err != nil {
			m.log.Warn("skipping dangling role reference", logger.UserID(userID), logger.Error(err))
		}
	}
	return acc
}

// HasPermission reports structural-equality membership of the permission in
// the user's transitive permission closure.
func (m *Manager) HasPermission(userID string, p Permission) bool {
	return m.GetUserPermissions(userID).Contains(p)
}

// RoleHasPermission checks the role's direct permissions for a
// (resource, action) match, then recurses into parent roles, short-circuiting
// on the first match found via any inheritance path.
func (m *Manager) RoleHasPermission(roleID, resource string, action Action) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.roleHasPermissionLocked(roleID, resource, action, make(map[string]bool), 0)
}

func (m *Manager) roleHasPermissionLocked(roleID, resource string, action Action, visited map[string]bool, depth int) bool {
	if visited[roleID] || depth > MaxInheritanceDepth {
		return false
	}
	visited[roleID] = true

	role, ok := m.roles[roleID]
	if !ok {
		return false
	}

	for _, p := range role.Permissions.Slice() {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}

	for _, parent := range role.ParentRoles {
		if m.roleHasPermissionLocked(parent, resource, action, visited, depth+1) {
			return true
		}
	}
	return false
}

// HasPermissionWithContext evaluates the requested permission against each of
// the user's roles and their ancestors using the full contextual matcher:
// identity, resource-id, scope, and condition gates all must pass for some
// role permission. Matching short-circuits across roles and ancestors.
func (m *Manager) HasPermissionWithContext(userID string, requested Permission, pctx *Context) bool {
	ids := m.assignedRoleIDs(userID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	visited := make(map[string]bool)
	for _, id := range ids {
		if m.roleMatchesContextLocked(id, requested, pctx, visited, 0) {
			return true
		}
	}
	return false
}

func (m *Manager) roleMatchesContextLocked(roleID string, requested Permission, pctx *Context, visited map[string]bool, depth int) bool {
	if visited[roleID] || depth > MaxInheritanceDepth {
		return false
	}
	visited[roleID] = true

	role, ok := m.roles[roleID]
	if !ok {
		return false
	}

	for _, p := range role.Permissions.Slice() {
		if matchPermission(p, requested, pctx) {
			return true
		}
	}

	for _, parent := range role.ParentRoles {
		if m.roleMatchesContextLocked(parent, requested, pctx, visited, depth+1) {
			return true
		}
	}
	return false
}

// HasPermissionFromContext checks the permission for the user id stored in
// the context via SetUserToContext.
func (m *Manager) HasPermissionFromContext(ctx context.Context, p Permission) (bool, error) {
	userID, ok := UserFromContext(ctx)
	if !ok {
		return false, ErrUserNotInContext
	}
	return m.HasPermission(userID, p), nil
}

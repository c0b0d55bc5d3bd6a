package rbac

import (
	"slices"
	"time"
)

// Role is a named, identified bundle of permissions plus the parent roles it
// inherits from. Role ids and names are unique across a Manager.
type Role struct {
	ID            string
	Name          string
	Description   string
	Permissions   *PermissionSet
	ParentRoles   []string // parent role ids
	SecurityLevel SecurityLevel
	CanDelegate   bool
	ManagedRoles  []string // role ids this role administers
}

// clone returns an independent copy safe to hand to callers.
func (r *Role) clone() Role {
	c := *r
	c.Permissions = r.Permissions.Clone()
	c.ParentRoles = slices.Clone(r.ParentRoles)
	c.ManagedRoles = slices.Clone(r.ManagedRoles)
	return c
}

// RoleOption customizes a role at creation time.
type RoleOption func(*Role)

// WithSecurityLevel sets the role's security level.
func WithSecurityLevel(level SecurityLevel) RoleOption {
	return func(r *Role) {
		r.SecurityLevel = level
	}
}

// WithDelegation marks the role as delegable by its direct holders.
func WithDelegation() RoleOption {
	return func(r *Role) {
		r.CanDelegate = true
	}
}

// WithManagedRoles lists the role ids this role may administer.
func WithManagedRoles(roleIDs ...string) RoleOption {
	return func(r *Role) {
		r.ManagedRoles = append(r.ManagedRoles, roleIDs...)
	}
}

// RoleTemplate is a reusable role definition. Permission strings use the
// "resource:action" form; parents are referenced by role name so templates
// can be registered before the roles they depend on exist.
type RoleTemplate struct {
	Name          string
	Description   string
	Permissions   []string
	ParentNames   []string
	SecurityLevel SecurityLevel
	CanDelegate   bool
}

// DelegationRecord is an immutable audit entry for a role delegation.
// Records are appended, never mutated or removed.
type DelegationRecord struct {
	DelegatorID string
	DelegateID  string
	RoleID      string
	Timestamp   time.Time
}

package rbac

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Permission is an allowed (resource, action) pair, optionally narrowed by a
// resource id, a scope, and an ordered list of conditions.
//
// Two permissions are "the same" only under full structural equality: every
// field, including ID and Name, must match. The Key form is a display and
// lookup convenience and is not unique within a role.
type Permission struct {
	ID         string
	Name       string
	Resource   string
	Action     Action
	ResourceID string // empty means unrestricted
	Scope      Scope
	Conditions []Condition
}

// NewPermission builds a permission with a fresh id, the "resource:action"
// display name, and ScopeAll.
func NewPermission(resource string, action Action) Permission {
	return Permission{
		ID:       uuid.New().String(),
		Name:     resource + ":" + action.String(),
		Resource: resource,
		Action:   action,
		Scope:    ScopeAll,
	}
}

// Key returns the "resource:action" form used for display and lookups.
func (p Permission) Key() string {
	return p.Resource + ":" + p.Action.String()
}

// Equal reports full structural equality, the relation used when
// deduplicating permissions in sets.
func (p Permission) Equal(other Permission) bool {
	return p.fingerprint() == other.fingerprint()
}

// fingerprint produces a canonical string over every field. Condition order
// is significant.
func (p Permission) fingerprint() string {
	var b strings.Builder
	b.WriteString(p.ID)
	b.WriteByte(0x1f)
	b.WriteString(p.Name)
	b.WriteByte(0x1f)
	b.WriteString(p.Resource)
	b.WriteByte(0x1f)
	b.WriteString(p.Action.String())
	b.WriteByte(0x1f)
	b.WriteString(p.ResourceID)
	b.WriteByte(0x1f)
	b.WriteString(string(p.Scope.Kind))
	b.WriteByte(0x1f)
	b.WriteString(p.Scope.Pattern)
	for _, c := range p.Conditions {
		b.WriteByte(0x1f)
		b.WriteString(c.fingerprint())
	}
	return b.String()
}

// PermissionSet deduplicates permissions by full structural equality.
// The zero value is not usable; construct with NewPermissionSet.
type PermissionSet struct {
	items map[string]Permission
}

// NewPermissionSet builds a set from the given permissions, deduplicating
// structurally equal entries.
func NewPermissionSet(perms ...Permission) *PermissionSet {
	s := &PermissionSet{items: make(map[string]Permission, len(perms))}
	for _, p := range perms {
		s.Add(p)
	}
	return s
}

// Add inserts a permission; structurally equal duplicates are ignored.
func (s *PermissionSet) Add(p Permission) {
	s.items[p.fingerprint()] = p
}

// Contains reports structural-equality membership.
func (s *PermissionSet) Contains(p Permission) bool {
	_, ok := s.items[p.fingerprint()]
	return ok
}

// Len returns the number of distinct permissions.
func (s *PermissionSet) Len() int {
	return len(s.items)
}

// Merge adds every permission from other.
func (s *PermissionSet) Merge(other *PermissionSet) {
	if other == nil {
		return
	}
	for k, p := range other.items {
		s.items[k] = p
	}
}

// Slice returns the permissions in deterministic order (by Key, then ID).
func (s *PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key() != out[j].Key() {
			return out[i].Key() < out[j].Key()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Clone returns an independent copy of the set.
func (s *PermissionSet) Clone() *PermissionSet {
	c := &PermissionSet{items: make(map[string]Permission, len(s.items))}
	for k, p := range s.items {
		c.items[k] = p
	}
	return c
}

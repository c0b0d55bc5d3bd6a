package rbac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DataScienceBioLab/accesskit/pkg/audit"
	"github.com/DataScienceBioLab/accesskit/pkg/logger"
)

// MaxInheritanceDepth caps traversal depth as a termination safety net on top
// of per-walk visited sets. Creation-time validation keeps the graph acyclic;
// the cap only matters if corrupted data reaches the store.
const MaxInheritanceDepth = 32

// Manager owns the role graph: the set of roles, the name index, user
// assignments, registered templates, and the delegation audit trail.
//
// All methods are safe for concurrent use. The role collections and the
// assignment collections are guarded separately so permission checks never
// hold one lock while acquiring the other.
type Manager struct {
	mu          sync.RWMutex // guards roles, rolesByName, templates
	roles       map[string]*Role
	rolesByName map[string]string
	templates   map[string]RoleTemplate

	assignMu      sync.RWMutex // guards userRoles and delegationLog as one unit
	userRoles     map[string]map[string]struct{}
	delegationLog []DelegationRecord

	log   *slog.Logger
	audit audit.Logger
	clock func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithAuditLogger records delegation events to the given audit logger.
func WithAuditLogger(al audit.Logger) Option {
	return func(m *Manager) {
		m.audit = al
	}
}

// WithClock sets the time source used for delegation records.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// NewManager creates an empty role graph store.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		roles:       make(map[string]*Role),
		rolesByName: make(map[string]string),
		templates:   make(map[string]RoleTemplate),
		userRoles:   make(map[string]map[string]struct{}),
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.log = m.log.With(logger.Component("rbac"))

	return m
}

// CreateRole adds a role with a freshly generated id. It fails if the name
// collides with an existing role or any parent id does not exist yet
// (parents must be created before children).
func (m *Manager) CreateRole(name, description string, perms []Permission, parents []string, opts ...RoleOption) (Role, error) {
	return m.createRole(uuid.New().String(), name, description, perms, parents, opts...)
}

// CreateRoleWithID is CreateRole with a caller-supplied id, for deterministic
// or pre-assigned identifiers. It additionally fails if the id already exists.
func (m *Manager) CreateRoleWithID(id, name, description string, perms []Permission, parents []string, opts ...RoleOption) (Role, error) {
	return m.createRole(id, name, description, perms, parents, opts...)
}

func (m *Manager) createRole(id, name, description string, perms []Permission, parents []string, opts ...RoleOption) (Role, error) {
	if id == "" || name == "" {
		return Role{}, errors.Join(ErrInvalidRole, errors.New("role id and name must be non-empty"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.roles[id]; exists {
		return Role{}, errors.Join(ErrRoleExists, fmt.Errorf("role id %q already exists", id))
	}
	if _, exists := m.rolesByName[name]; exists {
		return Role{}, errors.Join(ErrRoleExists, fmt.Errorf("role name %q already exists", name))
	}

	// Parents must already be in the store; a fresh id cannot appear in any
	// existing role's ancestry, so no further cycle check is needed here.
	parentSet := make([]string, 0, len(parents))
	seen := make(map[string]struct{}, len(parents))
	for _, parent := range parents {
		if _, exists := m.roles[parent]; !exists {
			return Role{}, errors.Join(ErrInvalidRole, fmt.Errorf("parent role %q does not exist", parent))
		}
		if _, dup := seen[parent]; dup {
			continue
		}
		seen[parent] = struct{}{}
		parentSet = append(parentSet, parent)
	}

	role := &Role{
		ID:          id,
		Name:        name,
		Description: description,
		Permissions: NewPermissionSet(perms...),
		ParentRoles: parentSet,
	}

	for _, opt := range opts {
		opt(role)
	}

	m.roles[id] = role
	m.rolesByName[name] = id

	m.log.Debug("role created", logger.Role(name), slog.Int("permissions", role.Permissions.Len()))

	return role.clone(), nil
}

// CreateRoleFromStrings builds a role from "resource:action" permission
// strings. Malformed strings fail validation before any mutation.
func (m *Manager) CreateRoleFromStrings(name, description string, permStrings []string, parents []string, opts ...RoleOption) (Role, error) {
	perms, err := parsePermissionStrings(permStrings)
	if err != nil {
		return Role{}, err
	}
	return m.CreateRole(name, description, perms, parents, opts...)
}

func parsePermissionStrings(permStrings []string) ([]Permission, error) {
	perms := make([]Permission, 0, len(permStrings))
	for _, s := range permStrings {
		resource, action, err := ParsePermissionString(s)
		if err != nil {
			return nil, err
		}
		perms = append(perms, NewPermission(resource, action))
	}
	return perms, nil
}

// RegisterTemplate stores a reusable role definition. The template's
// permission strings are validated up front; parent names are resolved when
// the template is instantiated.
func (m *Manager) RegisterTemplate(t RoleTemplate) error {
	if t.Name == "" {
		return errors.Join(ErrInvalidRole, errors.New("template name must be non-empty"))
	}
	if _, err := parsePermissionStrings(t.Permissions); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.templates[t.Name] = t
	return nil
}

// CreateRoleFromTemplate instantiates a registered template as a new role
// named after the template. Parent names must resolve to existing roles.
func (m *Manager) CreateRoleFromTemplate(templateName string) (Role, error) {
	m.mu.RLock()
	t, ok := m.templates[templateName]
	if !ok {
		m.mu.RUnlock()
		return Role{}, errors.Join(ErrRoleNotFound, fmt.Errorf("template %q is not registered", templateName))
	}

	parents := make([]string, 0, len(t.ParentNames))
	for _, name := range t.ParentNames {
		id, ok := m.rolesByName[name]
		if !ok {
			m.mu.RUnlock()
			return Role{}, errors.Join(ErrRoleNotFound, fmt.Errorf("parent role %q does not exist", name))
		}
		parents = append(parents, id)
	}
	m.mu.RUnlock()

	opts := []RoleOption{WithSecurityLevel(t.SecurityLevel)}
	if t.CanDelegate {
		opts = append(opts, WithDelegation())
	}

	return m.CreateRoleFromStrings(t.Name, t.Description, t.Permissions, parents, opts...)
}

// AssignRole binds a role to a user. Assigning the same role twice is a
// no-op, not an error.
func (m *Manager) AssignRole(userID, roleID string) error {
	m.mu.RLock()
	_, exists := m.roles[roleID]
	m.mu.RUnlock()

	if !exists {
		return errors.Join(ErrRoleNotFound, fmt.Errorf("role %q does not exist", roleID))
	}

	m.assignMu.Lock()
	defer m.assignMu.Unlock()

	m.assignLocked(userID, roleID)
	return nil
}

// assignLocked inserts the assignment. Caller holds assignMu.
func (m *Manager) assignLocked(userID, roleID string) {
	set, ok := m.userRoles[userID]
	if !ok {
		set = make(map[string]struct{})
		m.userRoles[userID] = set
	}
	set[roleID] = struct{}{}
}

// AssignRoleByName resolves a role name and delegates to AssignRole.
func (m *Manager) AssignRoleByName(userID, roleName string) error {
	m.mu.RLock()
	id, ok := m.rolesByName[roleName]
	m.mu.RUnlock()

	if !ok {
		return errors.Join(ErrRoleNotFound, fmt.Errorf("role named %q does not exist", roleName))
	}

	return m.AssignRole(userID, id)
}

// GetRoleByID returns a copy of the role with the given id.
func (m *Manager) GetRoleByID(id string) (Role, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	role, ok := m.roles[id]
	if !ok {
		return Role{}, false
	}
	return role.clone(), true
}

// GetRoleByName returns a copy of the role with the given name.
func (m *Manager) GetRoleByName(name string) (Role, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.rolesByName[name]
	if !ok {
		return Role{}, false
	}
	return m.roles[id].clone(), true
}

// GetRole looks a role up by id first, falling back to name.
func (m *Manager) GetRole(idOrName string) (Role, bool) {
	if role, ok := m.GetRoleByID(idOrName); ok {
		return role, true
	}
	return m.GetRoleByName(idOrName)
}

// GetUserRoles returns copies of the user's directly assigned roles, with no
// transitive expansion, sorted by name.
func (m *Manager) GetUserRoles(userID string) []Role {
	ids := m.assignedRoleIDs(userID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := m.roles[id]; ok {
			out = append(out, role.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetRoleUsers returns the ids of users directly holding the role.
func (m *Manager) GetRoleUsers(roleID string) []string {
	m.assignMu.RLock()
	defer m.assignMu.RUnlock()

	var users []string
	for userID, roles := range m.userRoles {
		if _, ok := roles[roleID]; ok {
			users = append(users, userID)
		}
	}
	sort.Strings(users)
	return users
}

// assignedRoleIDs snapshots the user's direct role ids.
func (m *Manager) assignedRoleIDs(userID string) []string {
	m.assignMu.RLock()
	defer m.assignMu.RUnlock()

	set := m.userRoles[userID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// DelegateRole grants a delegable role the delegator holds directly to
// another user and appends an immutable audit record. The assignment and the
// record are written under a single critical section, so concurrent readers
// never observe one without the other.
//
// Direct possession is required: holding the role transitively through a
// parent does not authorize delegation.
func (m *Manager) DelegateRole(ctx context.Context, delegatorID, delegateID, roleID string) error {
	m.mu.RLock()
	role, exists := m.roles[roleID]
	canDelegate := exists && role.CanDelegate
	m.mu.RUnlock()

	if !exists {
		return errors.Join(ErrRoleNotFound, fmt.Errorf("role %q does not exist", roleID))
	}
	if !canDelegate {
		return errors.Join(ErrInvalidRole, ErrDelegationDenied, fmt.Errorf("role %q is not delegable", roleID))
	}

	m.assignMu.Lock()
	if _, held := m.userRoles[delegatorID][roleID]; !held {
		m.assignMu.Unlock()
		return errors.Join(ErrInvalidRole, ErrDelegationDenied,
			fmt.Errorf("delegator %q does not directly hold role %q", delegatorID, roleID))
	}

	m.assignLocked(delegateID, roleID)
	m.delegationLog = append(m.delegationLog, DelegationRecord{
		DelegatorID: delegatorID,
		DelegateID:  delegateID,
		RoleID:      roleID,
		Timestamp:   m.clock(),
	})
	m.assignMu.Unlock()

	m.log.Info("role delegated",
		logger.UserID(delegatorID),
		logger.Role(roleID),
		slog.String("delegate_id", delegateID))

	if m.audit != nil {
		if err := m.audit.Log(ctx, "rbac.role.delegated",
			audit.WithActor(delegatorID),
			audit.WithResource("role", roleID),
			audit.WithMetadata("delegate_id", delegateID),
		); err != nil {
			m.log.Warn("audit log append failed", logger.Error(err))
		}
	}

	return nil
}

// DelegationLog returns a copy of the delegation audit trail in append order.
func (m *Manager) DelegationLog() []DelegationRecord {
	m.assignMu.RLock()
	defer m.assignMu.RUnlock()

	out := make([]DelegationRecord, len(m.delegationLog))
	copy(out, m.delegationLog)
	return out
}

// CanManageRole reports whether any role the user holds, or any ancestor of
// a held role, lists the target among its managed roles. Managing a role is
// administrative control over the role object, distinct from inheriting its
// permissions.
func (m *Manager) CanManageRole(userID, targetRoleID string) (bool, error) {
	held := m.assignedRoleIDs(userID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.roles[targetRoleID]; !exists {
		return false, errors.Join(ErrRoleNotFound, fmt.Errorf("role %q does not exist", targetRoleID))
	}

	visited := make(map[string]bool)
	for _, id := range held {
		manages, err := m.managesLocked(id, targetRoleID, visited, 0)
		if err != nil {
			return false, err
		}
		if manages {
			return true, nil
		}
	}
	return false, nil
}

// managesLocked walks the role and its ancestors. Caller holds mu read lock.
func (m *Manager) managesLocked(roleID, targetRoleID string, visited map[string]bool, depth int) (bool, error) {
	if visited[roleID] || depth > MaxInheritanceDepth {
		return false, nil
	}
	visited[roleID] = true

	role, ok := m.roles[roleID]
	if !ok {
		return false, errors.Join(ErrInvalidRole, fmt.Errorf("role %q referenced but not found", roleID))
	}

	for _, managed := range role.ManagedRoles {
		if managed == targetRoleID {
			return true, nil
		}
	}

	for _, parent := range role.ParentRoles {
		manages, err := m.managesLocked(parent, targetRoleID, visited, depth+1)
		if err != nil || manages {
			return manages, err
		}
	}
	return false, nil
}

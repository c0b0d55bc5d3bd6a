package rbac

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inject registers a role directly, bypassing the creation-time parent
// existence check so corrupted or mutually referencing graphs can be built.
func inject(m *Manager, id, name string, parents []string, perms ...Permission) {
	m.roles[id] = &Role{
		ID:          id,
		Name:        name,
		Permissions: NewPermissionSet(perms...),
		ParentRoles: parents,
	}
	m.rolesByName[name] = id
}

func TestDetectCycle_AdjacentPair(t *testing.T) {
	t.Parallel()

	m := NewManager()
	inject(m, "a", "role-a", []string{"b"})
	inject(m, "b", "role-b", []string{"a"})

	cyclic, err := m.CheckInheritanceCycles("a")
	require.NoError(t, err)
	assert.True(t, cyclic)

	cyclic, err = m.CheckInheritanceCycles("b")
	require.NoError(t, err)
	assert.True(t, cyclic)
}

func TestDetectCycle_SelfReference(t *testing.T) {
	t.Parallel()

	m := NewManager()
	inject(m, "a", "role-a", []string{"a"})

	cyclic, err := m.CheckInheritanceCycles("a")
	require.NoError(t, err)
	assert.True(t, cyclic)
}

func TestDetectCycle_LongLoop(t *testing.T) {
	t.Parallel()

	m := NewManager()
	inject(m, "a", "role-a", []string{"b"})
	inject(m, "b", "role-b", []string{"c"})
	inject(m, "c", "role-c", []string{"a"})

	cyclic, err := m.CheckInheritanceCycles("a")
	require.NoError(t, err)
	assert.True(t, cyclic)
}

// A diamond shares an ancestor across two paths without any path returning to
// its origin. The shared node is revisited but never re-enters the active
// recursion path.
func TestDetectCycle_DiamondIsNotACycle(t *testing.T) {
	t.Parallel()

	m := NewManager()
	inject(m, "top", "role-top", nil)
	inject(m, "left", "role-left", []string{"top"})
	inject(m, "right", "role-right", []string{"top"})
	inject(m, "bottom", "role-bottom", []string{"left", "right"})

	cyclic, err := m.CheckInheritanceCycles("bottom")
	require.NoError(t, err)
	assert.False(t, cyclic)
}

func TestDetectCycle_DanglingParentIsAnError(t *testing.T) {
	t.Parallel()

	m := NewManager()
	inject(m, "a", "role-a", []string{"ghost"})

	_, err := m.CheckInheritanceCycles("a")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestValidateGraph(t *testing.T) {
	t.Parallel()

	t.Run("clean graph", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		inject(m, "top", "role-top", nil)
		inject(m, "left", "role-left", []string{"top"})
		inject(m, "right", "role-right", []string{"top"})
		inject(m, "bottom", "role-bottom", []string{"left", "right"})

		assert.NoError(t, m.ValidateGraph())
	})

	t.Run("cycle reported", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		inject(m, "ok", "role-ok", nil)
		inject(m, "a", "role-a", []string{"b"})
		inject(m, "b", "role-b", []string{"a"})

		assert.ErrorIs(t, m.ValidateGraph(), ErrCircularInheritance)
	})

	t.Run("dangling reference reported", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		inject(m, "a", "role-a", []string{"ghost"})

		err := m.ValidateGraph()
		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.NotErrorIs(t, err, ErrCircularInheritance)
	})

	t.Run("empty graph", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, NewManager().ValidateGraph())
	})
}

func TestCollectPermissions_DanglingParent(t *testing.T) {
	t.Parallel()

	m := NewManager()
	p := NewPermission("doc", ActionRead)
	inject(m, "a", "role-a", []string{"ghost"}, p)

	m.mu.RLock()
	defer m.mu.RUnlock()

	acc := NewPermissionSet()
	err := m.collectPermissionsLocked("a", acc, make(map[string]bool), 0)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

// A corrupted cyclic graph must not hang read paths. The visited set bounds
// traversal to one visit per role regardless of shape.
func TestGetUserPermissions_TerminatesOnCycle(t *testing.T) {
	t.Parallel()

	m := NewManager()
	pa := NewPermission("doc", ActionRead)
	pb := NewPermission("doc", ActionUpdate)
	inject(m, "a", "role-a", []string{"b"}, pa)
	inject(m, "b", "role-b", []string{"a"}, pb)
	require.NoError(t, m.AssignRole("alice", "a"))

	got := m.GetUserPermissions("alice")
	assert.Equal(t, 2, got.Len())
	assert.True(t, got.Contains(pa))
	assert.True(t, got.Contains(pb))
}

func TestGetUserPermissions_SkipsDanglingReference(t *testing.T) {
	t.Parallel()

	m := NewManager()
	pa := NewPermission("doc", ActionRead)
	pb := NewPermission("report", ActionRead)
	inject(m, "broken", "role-broken", []string{"ghost"}, pa)
	inject(m, "intact", "role-intact", nil, pb)
	require.NoError(t, m.AssignRole("alice", "broken"))
	require.NoError(t, m.AssignRole("alice", "intact"))

	got := m.GetUserPermissions("alice")
	assert.True(t, got.Contains(pb), "intact role still contributes")
}

func TestHasPermissionWithContext_TerminatesOnCycle(t *testing.T) {
	t.Parallel()

	m := NewManager()
	inject(m, "a", "role-a", []string{"b"})
	inject(m, "b", "role-b", []string{"a"})
	require.NoError(t, m.AssignRole("alice", "a"))

	assert.False(t, m.HasPermissionWithContext("alice", NewPermission("doc", ActionRead), nil))
}

func TestCollectPermissions_DepthCap(t *testing.T) {
	t.Parallel()

	m := NewManager()
	deep := NewPermission("doc", ActionRead)

	// Chain of length MaxInheritanceDepth+2 so the last link sits past the cap.
	last := "r0"
	inject(m, last, "role-0", nil, deep)
	for i := 1; i <= MaxInheritanceDepth+1; i++ {
		id := fmt.Sprintf("r%d", i)
		inject(m, id, "role-"+id, []string{last})
		last = id
	}
	require.NoError(t, m.AssignRole("alice", last))

	got := m.GetUserPermissions("alice")
	assert.False(t, got.Contains(deep), "roles past the depth cap are not collected")
}

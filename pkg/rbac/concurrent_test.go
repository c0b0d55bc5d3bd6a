package rbac_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataScienceBioLab/accesskit/pkg/rbac"
)

func TestManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := rbac.NewManager()
	p := rbac.NewPermission("doc", rbac.ActionRead)
	base, err := m.CreateRole("base", "", []rbac.Permission{p}, nil)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup

	// Writers create distinct roles inheriting from base and assign them.
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("writer-role-%d", i)
			role, err := m.CreateRole(name, "", nil, []string{base.ID})
			assert.NoError(t, err)
			assert.NoError(t, m.AssignRole(fmt.Sprintf("user-%d", i), role.ID))
		}()
	}

	// Readers exercise the lookup and closure paths while writes are in flight.
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			for j := 0; j < 50; j++ {
				_ = m.GetUserPermissions(userID)
				_ = m.HasPermission(userID, p)
				_ = m.GetUserRoles(userID)
				_, _ = m.GetRoleByName("base")
			}
		}()
	}

	wg.Wait()

	// Once all writers finish every user holds base's permission transitively.
	for i := 0; i < workers; i++ {
		assert.True(t, m.HasPermission(fmt.Sprintf("user-%d", i), p))
	}
}

func TestManager_ConcurrentDuplicateNames(t *testing.T) {
	t.Parallel()

	m := rbac.NewManager()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.CreateRole("contested", "", nil, nil); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one creation wins the name")
}

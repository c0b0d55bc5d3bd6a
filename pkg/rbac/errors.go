package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrRoleNotFound is returned when a referenced role id or name has no
	// corresponding entry in the store.
	ErrRoleNotFound = errors.New("rbac.role_not_found")

	// ErrRoleExists is returned when role creation collides with an existing
	// role id or name.
	ErrRoleExists = errors.New("rbac.role_already_exists")

	// ErrInvalidRole is returned for malformed permission strings, dangling
	// parent references, and other validation failures.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrCircularInheritance is returned when a role's parent chain reaches
	// back to the role itself.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")

	// ErrDelegationDenied is returned when a delegation precondition fails:
	// the role is not delegable, or the delegator does not hold it directly.
	ErrDelegationDenied = errors.New("rbac.delegation_denied")

	// ErrUserNotInContext is returned when no user id is found in the context.
	ErrUserNotInContext = errors.New("rbac.user_not_in_context")
)

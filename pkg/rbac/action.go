package rbac

import (
	"errors"
	"fmt"
	"strings"
)

// Action is the closed set of operations a permission can allow.
type Action int

const (
	ActionCreate Action = iota
	ActionRead
	ActionUpdate
	ActionDelete
	ActionExecute
	ActionAdmin
)

var actionNames = [...]string{
	ActionCreate:  "create",
	ActionRead:    "read",
	ActionUpdate:  "update",
	ActionDelete:  "delete",
	ActionExecute: "execute",
	ActionAdmin:   "admin",
}

// String returns the stable lowercase form used for serialization and in
// permission strings ("resource:action").
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction converts the lowercase string form back to an Action.
// It round-trips with String for every defined action.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if s == name {
			return Action(i), nil
		}
	}
	return 0, errors.Join(ErrInvalidRole, fmt.Errorf("unknown action %q", s))
}

// ParsePermissionString splits a "resource:action" string into its parts.
// The string must contain exactly one ":" separator and a non-empty resource.
func ParsePermissionString(s string) (string, Action, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, errors.Join(ErrInvalidRole, fmt.Errorf("malformed permission string %q", s))
	}

	action, err := ParseAction(parts[1])
	if err != nil {
		return "", 0, err
	}

	return parts[0], action, nil
}

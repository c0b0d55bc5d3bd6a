package rbac

import (
	"context"
	"time"
)

// Context carries the request-time facts conditional permission checks
// evaluate against. Missing facts fail closed: a condition that needs a field
// the context does not carry evaluates to false.
type Context struct {
	// UserID is the principal the check runs for.
	UserID string

	// ResourceOwnerID identifies the owner of the resource being accessed.
	ResourceOwnerID string

	// ResourceGroupID identifies the group the resource belongs to, if any.
	ResourceGroupID string

	// NetworkAddress is the client's IP address in dotted form.
	NetworkAddress string

	// CurrentTime is the evaluation time for time-range conditions.
	// Nil fails those conditions closed.
	CurrentTime *time.Time

	// SecurityLevel is the level the principal currently operates at.
	SecurityLevel SecurityLevel

	// Attributes holds arbitrary key-value facts for attribute conditions.
	Attributes map[string]string
}

// userCtxKey is the context key for storing the acting user id.
type userCtxKey struct{}

// SetUserToContext stores the acting user's id in the context.
func SetUserToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userCtxKey{}, userID)
}

// UserFromContext retrieves the acting user's id from the context.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userCtxKey{}).(string)
	return userID, ok
}

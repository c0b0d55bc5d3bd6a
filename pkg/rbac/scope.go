package rbac

// ScopeKind identifies the breadth over which a permission applies.
type ScopeKind string

const (
	ScopeKindOwn     ScopeKind = "own"
	ScopeKindGroup   ScopeKind = "group"
	ScopeKindAll     ScopeKind = "all"
	ScopeKindPattern ScopeKind = "pattern"
)

// Scope narrows a permission to own resources, group resources, all
// resources, or a pattern-matched subset.
type Scope struct {
	Kind    ScopeKind
	Pattern string
}

var (
	// ScopeOwn matches only when the context's resource owner equals the
	// context's user.
	ScopeOwn = Scope{Kind: ScopeKindOwn}

	// ScopeGroup matches when the context carries a resource group id.
	// Presence alone authorizes; actual membership verification is left to
	// an external directory.
	ScopeGroup = Scope{Kind: ScopeKindGroup}

	// ScopeAll matches unconditionally.
	ScopeAll = Scope{Kind: ScopeKindAll}
)

// ScopePattern matches other pattern scopes via glob-style "*" matching.
func ScopePattern(pattern string) Scope {
	return Scope{Kind: ScopeKindPattern, Pattern: pattern}
}

// matchScope decides whether a role permission's scope applies to a request.
// Only the four cases below match; any other combination is non-matching.
func matchScope(roleScope, requestedScope Scope, pctx *Context) bool {
	switch roleScope.Kind {
	case ScopeKindAll:
		return true
	case ScopeKindOwn:
		// Absent owner information fails closed.
		return pctx.ResourceOwnerID != "" && pctx.ResourceOwnerID == pctx.UserID
	case ScopeKindGroup:
		return pctx.ResourceGroupID != ""
	case ScopeKindPattern:
		return requestedScope.Kind == ScopeKindPattern && globMatch(roleScope.Pattern, requestedScope.Pattern)
	default:
		return false
	}
}

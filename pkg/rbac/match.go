package rbac

import (
	"regexp"
	"strings"
)

// matchPermission is the core contextual decision: a role permission applies
// to a requested permission iff all four gates pass.
func matchPermission(rolePerm, requested Permission, pctx *Context) bool {
	if pctx == nil {
		pctx = &Context{}
	}

	// Identity gate: resource and action must match exactly.
	if rolePerm.Resource != requested.Resource || rolePerm.Action != requested.Action {
		return false
	}

	// Resource-id gate: restrictive only when both sides carry an id.
	if rolePerm.ResourceID != "" && requested.ResourceID != "" {
		if rolePerm.ResourceID != requested.ResourceID && !globMatch(rolePerm.ResourceID, requested.ResourceID) {
			return false
		}
	}

	// Scope gate.
	if !matchScope(rolePerm.Scope, requested.Scope, pctx) {
		return false
	}

	// Conditions gate: conjunction over the role permission's conditions.
	for _, cond := range rolePerm.Conditions {
		if !cond.Evaluate(pctx) {
			return false
		}
	}

	return true
}

// globMatch matches s against a glob pattern where "*" matches any run of
// characters. The pattern is anchored at both ends.
func globMatch(pattern, s string) bool {
	if pattern == s {
		return true
	}

	segments := strings.Split(pattern, "*")
	for i, seg := range segments {
		segments[i] = regexp.QuoteMeta(seg)
	}

	re, err := regexp.Compile("^" + strings.Join(segments, ".*") + "$")
	if err != nil {
		return false
	}

	return re.MatchString(s)
}

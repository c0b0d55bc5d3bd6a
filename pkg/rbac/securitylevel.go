package rbac

import "fmt"

// SecurityLevel orders roles, sessions and conditions on a single scale.
// Higher values grant access to lower-level requirements.
type SecurityLevel int

const (
	LevelPublic SecurityLevel = iota
	LevelInternal
	LevelConfidential
	LevelSecret
	LevelCritical
)

var securityLevelNames = [...]string{
	LevelPublic:       "public",
	LevelInternal:     "internal",
	LevelConfidential: "confidential",
	LevelSecret:       "secret",
	LevelCritical:     "critical",
}

func (l SecurityLevel) String() string {
	if l < 0 || int(l) >= len(securityLevelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return securityLevelNames[l]
}

// Meets reports whether the level satisfies the required minimum.
func (l SecurityLevel) Meets(required SecurityLevel) bool {
	return l >= required
}

package rbac

import (
	"fmt"
	"strings"
	"time"
)

// Condition is a contextual predicate attached to a permission. All
// conditions on a permission must hold for it to apply in a contextual check.
//
// The set of conditions is closed: the unexported fingerprint method keeps
// implementations inside this package.
type Condition interface {
	// Evaluate reports whether the condition holds for the given context.
	// Conditions fail closed when the context lacks the facts they need.
	Evaluate(pctx *Context) bool

	fingerprint() string
}

// TimeRangeCondition restricts a permission to a daily time window on
// selected weekdays. Start and End use "HH:MM" (24-hour) form; Days carries
// short weekday names ("Mon", "Tue", ...). The window is inclusive at both
// ends.
type TimeRangeCondition struct {
	Start string
	End   string
	Days  []string
}

func (c TimeRangeCondition) Evaluate(pctx *Context) bool {
	if pctx.CurrentTime == nil {
		return false
	}

	start, err := parseClock(c.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(c.End)
	if err != nil {
		return false
	}

	now := *pctx.CurrentTime
	day := now.Weekday().String()[:3]
	dayAllowed := false
	for _, d := range c.Days {
		if d == day {
			dayAllowed = true
			break
		}
	}
	if !dayAllowed {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	return minutes >= start && minutes <= end
}

func (c TimeRangeCondition) fingerprint() string {
	return "time:" + c.Start + "-" + c.End + ":" + strings.Join(c.Days, ",")
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NetworkRangeCondition restricts a permission to clients whose address
// falls inside a network range.
//
// Matching is a documented approximation, not real CIDR arithmetic: the mask
// suffix is stripped and the context's address must start with the range's
// first three dot-separated octets.
type NetworkRangeCondition struct {
	CIDR string
}

func (c NetworkRangeCondition) Evaluate(pctx *Context) bool {
	if pctx.NetworkAddress == "" {
		return false
	}

	prefix, _, _ := strings.Cut(c.CIDR, "/")
	octets := strings.Split(prefix, ".")
	if len(octets) > 3 {
		octets = octets[:3]
	}

	return strings.HasPrefix(pctx.NetworkAddress, strings.Join(octets, "."))
}

func (c NetworkRangeCondition) fingerprint() string {
	return "network:" + c.CIDR
}

// MinSecurityLevelCondition requires the context to operate at or above the
// given security level.
type MinSecurityLevelCondition struct {
	Level SecurityLevel
}

func (c MinSecurityLevelCondition) Evaluate(pctx *Context) bool {
	return pctx.SecurityLevel.Meets(c.Level)
}

func (c MinSecurityLevelCondition) fingerprint() string {
	return fmt.Sprintf("seclevel:%d", int(c.Level))
}

// AttributeCondition requires an exact match on a context attribute.
// A missing key evaluates to false.
type AttributeCondition struct {
	Attribute string
	Value     string
}

func (c AttributeCondition) Evaluate(pctx *Context) bool {
	if pctx.Attributes == nil {
		return false
	}
	v, ok := pctx.Attributes[c.Attribute]
	return ok && v == c.Value
}

func (c AttributeCondition) fingerprint() string {
	return "attr:" + c.Attribute + "=" + c.Value
}

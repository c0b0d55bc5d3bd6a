package session

// Status is a session's position in its lifecycle.
type Status string

const (
	StatusAuthenticating Status = "authenticating"
	StatusActive         Status = "active"
	StatusExpired        Status = "expired"
	StatusInvalidated    Status = "invalidated"
)

// statusTransitions is the allowed lifecycle:
// authenticating -> active -> (expired | invalidated).
var statusTransitions = map[Status][]Status{
	StatusAuthenticating: {StatusActive, StatusInvalidated},
	StatusActive:         {StatusExpired, StatusInvalidated},
}

// canTransition reports whether the lifecycle allows moving to the target
// status. Expired and invalidated are terminal.
func (s Status) canTransition(to Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

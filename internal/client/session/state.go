package session

import "github.com/dmitrijs2005/alumnilink/internal/client/client"

// State is the lifecycle phase of a session.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the session at one instant. Token and
// User are set only in StateAuthenticated; Loading is true while the session
// has not settled.
type Snapshot struct {
	State   State
	Token   string
	User    *client.User
	Loading bool
}

// Pending reports whether the session has not settled yet.
func (s Snapshot) Pending() bool {
	return s.Loading || s.State == StateUninitialized || s.State == StateRestoring
}

func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

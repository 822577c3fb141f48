package session

import "time"

// State is the lifecycle state of a [Store].
type State uint8

const (
	// StateAnonymous means no token is held. Initial and terminal state.
	StateAnonymous State = iota
	// StateAuthenticating means a token is held but the profile has not
	// been fetched yet. The profile may transiently lag the token.
	StateAuthenticating
	// StateActive means both token and profile are held.
	StateActive
)

// String implements fmt.Stringer for diagnostics and sink metadata.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// User is the profile record returned by the storefront API. It is immutable
// from the store's perspective; only the profile operations request changes.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is a point-in-time copy of the session record. User is nil unless
// the store is Active; Token is empty iff the store is Anonymous.
type Snapshot struct {
	Token string
	User  *User
}

// State derives the lifecycle state from the snapshot contents.
func (s Snapshot) State() State {
	switch {
	case s.Token == "":
		return StateAnonymous
	case s.User == nil:
		return StateAuthenticating
	default:
		return StateActive
	}
}

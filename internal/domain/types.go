package domain

// ID is used across domain entities.
type ID int64

// Role values stored on users and carried in session tokens.
const (
	RoleAdmin   = "admin"
	RoleCounter = "counter"
)

// Actor is the authenticated identity behind a request. It is built once by
// the auth middleware and passed into every service call explicitly; services
// never read identity from ambient state.
type Actor struct {
	UserID      ID     `json:"userId"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	CounterName string `json:"counterName,omitempty"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

package domain

// Session points at the active user. At most one exists per blob store.
type Session struct {
	UserID string `json:"userId" validate:"required"`
}

// SessionState is the state of the local session machine.
type SessionState string

const (
	StateLoggedOut SessionState = "logged_out"
	StateLoggedIn  SessionState = "logged_in"
)

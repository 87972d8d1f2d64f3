package domain

// Session identifies the active user for a run of the CLI. It is created
// by the caller when a user is selected and passed into every catalog call.
type Session struct {
	UserID   int64
	Username string
}

// NewSession starts a session for u.
func NewSession(u *User) Session {
	return Session{UserID: u.ID, Username: u.Username}
}

// Valid reports whether a user has been selected.
func (s Session) Valid() bool {
	return s.UserID > 0
}

package domain

import "strings"

// MaxUsernameLength bounds usernames so the selection screen stays readable.
const MaxUsernameLength = 64

// User is a catalog owner. Users are created once and never renamed;
// deleting one removes every movie they own.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewUserRequest is the validated input for creating a user.
type NewUserRequest struct {
	Username string `name:"username" validate:"required,max=64"`
}

// NormalizeUsername trims surrounding whitespace from a typed username.
func NormalizeUsername(s string) string {
	return strings.TrimSpace(s)
}

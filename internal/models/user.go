package models

import "time"

// User represents a user account in the system.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	// Auth is only populated for internal lookups and never serialized.
	Auth *Authentication `json:"-"`
}

// Authentication holds a user's credential material. It lives on the user
// row but is excluded from every client-facing representation.
type Authentication struct {
	PasswordHash string
	Salt         string
	// SessionToken is nil until the first login and replaced on every login.
	SessionToken *string
}

// Sanitized returns a copy of the user safe to hand to clients.
func (u User) Sanitized() User {
	u.Auth = nil
	return u
}

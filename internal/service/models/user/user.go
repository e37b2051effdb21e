package user

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleUser   Role = "USER"
	RoleWorker Role = "WORKER"
)

func (r Role) String() string {
	return string(r)
}

// User represents a user row. The password is the stored hash, never the
// plaintext; hashing itself lives in the auth collaborator.
type User struct {
	ID                int64      `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Password          string     `json:"-"`
	Role              Role       `json:"role"`
	Verified          bool       `json:"verified"`
	VerificationToken string     `json:"-"`
	TokenExpiry       *time.Time `json:"-"`
}

// Summary is the user shape embedded in order listings and the completion
// result (id and email are what the notification needs).
type Summary struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

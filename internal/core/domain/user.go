package domain

import (
	"errors"
	"time"
)

// Role is the authority level carried by a user and by the tokens issued to it.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// User models an authenticated actor in the system.
// PasswordHash is only ever produced by the password hasher and never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims is the identity snapshot embedded in a signed token at issuance time.
type Claims struct {
	ID        string
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

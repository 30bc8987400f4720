// Package auth is responsible for authentication and authorization: user
// registration, login and logout, DB-backed sessions carried by a signed
// cookie token, and per-request identity resolution.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User roles. The first account registered on an empty database is seeded as
// the admin; everyone after that is a member.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a user record as stored in the database.
type User struct {
	ID             int
	Email          string
	HashedPassword string
	Name           string
	Role           string
	CreatedAt      time.Time
}

// Session is a server-side session record. The client never holds the raw
// token; it holds a signed wrapper issued by the token codec.
type Session struct {
	Token     uuid.UUID
	UserID    int
	ExpiresAt time.Time
}

// Identity is the authenticated actor for a request. A nil *Identity is the
// anonymous viewer; every handler branches on that rather than assuming a
// logged-in user.
type Identity struct {
	UserID int
	Name   string
	Email  string
	Role   string
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (id *Identity) Authenticated() bool {
	return id != nil
}

// IsAdmin reports whether the identity may create, edit and delete posts.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == RoleAdmin
}

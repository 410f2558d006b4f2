package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/classlog/classlog/internal/model"
)

// SessionClaims is the payload sealed into a session token: the subject
// (username) plus uid/role extension claims. Role and uid are convenience
// copies for logging; the resolver re-reads both from the store on every
// request, so a stale claim can never widen access.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID      int64  `json:"uid,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// Username returns the token subject.
func (c *SessionClaims) Username() string {
	return c.RegisteredClaims.Subject
}

// Identity is the authenticated actor handed to handlers and the
// authorization policy. It never carries the password digest.
type Identity struct {
	ID       int64
	Username string
	Role     model.Role
}

// Package auth implements stateless session tokens and authorization
// decisions. Tokens are signed JWTs carrying the user id and role; no
// session state is kept server-side.
package auth

import (
	"quill/internal/models"
)

// Identity is the verified {userId, role} pair derived from a session token.
// The zero value is Anonymous.
type Identity struct {
	UserID uint
	Role   models.Role
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity belongs to an unauthenticated caller.
func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

// IsAdmin reports whether the identity holds the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

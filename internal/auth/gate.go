package auth

import (
	"quill/internal/models"
)

// Action is a mutating operation on a post.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Scope describes which posts an identity may list. A zero AuthorID means
// all posts are visible.
type Scope struct {
	AuthorID uint
}

// All reports whether the scope covers every post.
func (s Scope) All() bool {
	return s.AuthorID == 0
}

// ReadScope returns the listing scope for an identity. Anonymous callers and
// regular users see all posts; admins see only their own posts, keeping each
// author's dashboard scoped to their own content. This is deliberately
// narrower than write permission (see CanWrite).
func ReadScope(identity Identity) Scope {
	if identity.IsAdmin() {
		return Scope{AuthorID: identity.UserID}
	}
	return Scope{}
}

// CanWrite decides whether the identity may perform a mutating action on
// posts. Any admin may update or delete any post, not just their own; the
// existence check for update/delete targets happens in the post service
// where the repository is available.
func CanWrite(identity Identity, action Action) error {
	if identity.IsAnonymous() {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if !identity.IsAdmin() {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}

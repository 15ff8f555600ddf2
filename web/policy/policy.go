// Package policy holds the pure authorization decisions of the blogd API.
// Functions here never touch the database; callers load whatever records a
// decision needs and persist only after the decision allows it.
package policy

import "blogd/database/model"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleReader:
		return true
	}
	return false
}

// Actor identifies the authenticated caller of an operation. Role is the
// snapshot embedded in the caller's token, except in the role lifecycle path
// which re-verifies against the store.
type Actor struct {
	Id   int
	Role Role
}

// CanCreatePost reports whether actor may create a post.
func CanCreatePost(actor Actor) bool {
	switch actor.Role {
	case RoleAdmin, RoleAuthor:
		return true
	case RoleReader:
		return false
	}
	return false
}

// CanModifyPost reports whether actor may update or delete post. Admins
// bypass ownership; authors must own the post; readers never may.
func CanModifyPost(actor Actor, post *model.Post) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleAuthor:
		return actor.Id == post.AuthorId
	case RoleReader:
		return false
	}
	return false
}

// CanComment reports whether actor may add a comment to a post. Any
// authenticated actor with a known role may.
func CanComment(actor Actor) bool {
	return actor.Role.Valid()
}

// CanDeleteComment reports whether actor may delete comment from post.
// Allowed for admins, the owning post's author and the comment's own author.
func CanDeleteComment(actor Actor, post *model.Post, comment *model.Comment) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	if !actor.Role.Valid() {
		return false
	}
	return actor.Id == post.AuthorId || actor.Id == comment.AuthorId
}

package policy

import "errors"

// MaxAdmins is the hard cap on concurrently existing admin accounts.
const MaxAdmins = 5

// Role lifecycle denials. Each maps to 403 at the HTTP layer except
// ErrInvalidRole, which is a 400.
var (
	ErrPrivilegeRevoked = errors.New("caller is no longer an admin")
	ErrSelfModification = errors.New("admins cannot change their own role")
	ErrInvalidRole      = errors.New("unknown role")
	ErrLastAdmin        = errors.New("cannot demote the last admin")
	ErrAdminCeiling     = errors.New("admin limit reached")
)

// CheckRoleChange evaluates the guards protecting a role update, in order,
// and returns the first failure.
//
// actorStoredRole is the caller's role as currently persisted, re-fetched at
// call time rather than trusted from the token snapshot. adminCount is the
// number of admin accounts currently persisted.
func CheckRoleChange(actor Actor, actorStoredRole Role, target Actor, newRole Role, adminCount int64) error {
	if actorStoredRole != RoleAdmin {
		return ErrPrivilegeRevoked
	}
	if actor.Id == target.Id {
		return ErrSelfModification
	}
	if !newRole.Valid() {
		return ErrInvalidRole
	}
	if target.Role == RoleAdmin && newRole != RoleAdmin && adminCount <= 1 {
		return ErrLastAdmin
	}
	if target.Role != RoleAdmin && newRole == RoleAdmin && adminCount >= MaxAdmins {
		return ErrAdminCeiling
	}
	return nil
}

// CheckUserDelete guards admin-initiated account deletion: no self-delete,
// and the system must keep at least one admin.
func CheckUserDelete(actor Actor, target Actor, adminCount int64) error {
	if actor.Id == target.Id {
		return ErrSelfModification
	}
	if target.Role == RoleAdmin && adminCount <= 1 {
		return ErrLastAdmin
	}
	return nil
}

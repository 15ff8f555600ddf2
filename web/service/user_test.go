package service

import (
	"fmt"
	"testing"

	"blogd/database/model"
	"blogd/web/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorOf(u *model.User) policy.Actor {
	return policy.Actor{Id: u.Id, Role: policy.Role(u.Role)}
}

func TestUpdateRole_PromoteReader(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	target := seedUser(t, "bob", policy.RoleReader)

	updated, err := svc.UpdateRole(actorOf(admin), target.Id, policy.RoleAuthor)
	require.NoError(t, err)
	assert.Equal(t, "author", updated.Role)

	got, err := svc.GetUser(target.Id)
	require.NoError(t, err)
	assert.Equal(t, "author", got.Role)
}

func TestUpdateRole_SelfChangeForbidden(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)

	_, err := svc.UpdateRole(actorOf(admin), admin.Id, policy.RoleReader)
	assert.ErrorIs(t, err, policy.ErrSelfModification)
}

func TestUpdateRole_CallerDemotedSinceTokenIssued(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	other := seedUser(t, "other", policy.RoleAdmin)
	target := seedUser(t, "bob", policy.RoleReader)

	// The actor still presents an admin token but their stored role changed.
	require.NoError(t, svc.DB.Model(&model.User{}).Where("id = ?", admin.Id).
		Update("role", string(policy.RoleReader)).Error)

	_, err := svc.UpdateRole(actorOf(admin), target.Id, policy.RoleAuthor)
	assert.ErrorIs(t, err, policy.ErrPrivilegeRevoked)

	// The remaining admin is unaffected.
	_, err = svc.UpdateRole(actorOf(other), target.Id, policy.RoleAuthor)
	assert.NoError(t, err)
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	target := seedUser(t, "bob", policy.RoleReader)

	_, err := svc.UpdateRole(actorOf(admin), target.Id, policy.Role("moder"))
	assert.ErrorIs(t, err, policy.ErrInvalidRole)
}

func TestUpdateRole_LastAdminProtected(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	other := seedUser(t, "other", policy.RoleAdmin)

	// Two admins: demoting one works.
	_, err := svc.UpdateRole(actorOf(admin), other.Id, policy.RoleReader)
	require.NoError(t, err)

	_, err = svc.UpdateRole(actorOf(admin), other.Id, policy.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.UpdateRole(actorOf(other), admin.Id, policy.RoleAuthor)
	require.NoError(t, err)

	// other is now the only admin; admin (demoted) cannot act, and other
	// cannot demote themselves.
	_, err = svc.UpdateRole(actorOf(admin), other.Id, policy.RoleReader)
	assert.ErrorIs(t, err, policy.ErrPrivilegeRevoked)
	_, err = svc.UpdateRole(actorOf(other), other.Id, policy.RoleReader)
	assert.ErrorIs(t, err, policy.ErrSelfModification)
}

func TestUpdateRole_AdminCeiling(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	for i := 0; i < policy.MaxAdmins-1; i++ {
		seedUser(t, fmt.Sprintf("admin%d", i), policy.RoleAdmin)
	}
	target := seedUser(t, "bob", policy.RoleReader)

	_, err := svc.UpdateRole(actorOf(admin), target.Id, policy.RoleAdmin)
	assert.ErrorIs(t, err, policy.ErrAdminCeiling)

	// Dropping one admin frees a slot.
	var victim model.User
	require.NoError(t, svc.DB.Where("username = ?", "admin0").First(&victim).Error)
	_, err = svc.UpdateRole(actorOf(admin), victim.Id, policy.RoleReader)
	require.NoError(t, err)

	updated, err := svc.UpdateRole(actorOf(admin), target.Id, policy.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
}

func TestUpdateRole_TargetNotFound(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)

	_, err := svc.UpdateRole(actorOf(admin), 999, policy.RoleAuthor)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	reader := seedUser(t, "bob", policy.RoleReader)

	require.NoError(t, svc.DeleteUser(actorOf(admin), reader.Id))
	_, err := svc.GetUser(reader.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	// No self-delete.
	assert.ErrorIs(t, svc.DeleteUser(actorOf(admin), admin.Id), policy.ErrSelfModification)

	other := seedUser(t, "other", policy.RoleAdmin)
	require.NoError(t, svc.DeleteUser(actorOf(admin), other.Id))
}

func TestDeleteUser_CallerDemotedSinceTokenIssued(t *testing.T) {
	setupDB(t)
	svc := NewUserService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	other := seedUser(t, "other", policy.RoleAdmin)
	target := seedUser(t, "bob", policy.RoleReader)

	// The actor still presents an admin token but their stored role changed:
	// deletion is refused the same way a role update would be.
	require.NoError(t, svc.DB.Model(&model.User{}).Where("id = ?", admin.Id).
		Update("role", string(policy.RoleReader)).Error)

	assert.ErrorIs(t, svc.DeleteUser(actorOf(admin), target.Id), policy.ErrPrivilegeRevoked)

	// A caller whose account is gone entirely is treated the same.
	require.NoError(t, svc.DB.Delete(&model.User{}, admin.Id).Error)
	assert.ErrorIs(t, svc.DeleteUser(actorOf(admin), target.Id), policy.ErrPrivilegeRevoked)

	// The remaining admin is unaffected.
	assert.NoError(t, svc.DeleteUser(actorOf(other), target.Id))
}

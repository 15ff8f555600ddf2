package service

import (
	"fmt"

	"blogd/database"
	"blogd/database/model"
	"blogd/logger"
	"blogd/web/policy"

	"gorm.io/gorm"
)

// UserService implements the admin-only user management operations,
// including the role lifecycle guards.
type UserService struct {
	DB *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{DB: database.GetDB()}
}

func (s *UserService) ListUsers() ([]UserDTO, error) {
	var users []model.User
	if err := s.DB.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toDTO(&users[i]))
	}
	return out, nil
}

func (s *UserService) GetUser(id int) (UserDTO, error) {
	var u model.User
	if err := s.DB.First(&u, id).Error; err != nil {
		if database.IsNotFound(err) {
			return UserDTO{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return UserDTO{}, err
	}
	return toDTO(&u), nil
}

func (s *UserService) countAdmins(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&model.User{}).Where("role = ?", string(policy.RoleAdmin)).Count(&count).Error
	return count, err
}

// UpdateRole changes the target's role after the lifecycle guards pass.
// The caller's role is re-fetched from the store rather than trusted from the
// token, so a demoted admin cannot keep changing roles on a stale token. The
// guard evaluation and the write share one transaction.
func (s *UserService) UpdateRole(actor policy.Actor, targetId int, newRole policy.Role) (UserDTO, error) {
	var target model.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var caller model.User
		if err := tx.First(&caller, actor.Id).Error; err != nil {
			if database.IsNotFound(err) {
				return policy.ErrPrivilegeRevoked
			}
			return err
		}

		if err := tx.First(&target, targetId).Error; err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("%w: user %d", ErrNotFound, targetId)
			}
			return err
		}

		adminCount, err := s.countAdmins(tx)
		if err != nil {
			return err
		}

		if err := policy.CheckRoleChange(
			actor,
			policy.Role(caller.Role),
			policy.Actor{Id: target.Id, Role: policy.Role(target.Role)},
			newRole,
			adminCount,
		); err != nil {
			return err
		}

		target.Role = string(newRole)
		return tx.Save(&target).Error
	})
	if err != nil {
		return UserDTO{}, err
	}
	logger.Infof("user %d role changed to %s by admin %d", target.Id, target.Role, actor.Id)
	return toDTO(&target), nil
}

// DeleteUser removes an account. The caller's stored role is re-verified the
// same way UpdateRole does it; self-deletion and deleting the last admin are
// refused. The deleted author's posts keep their author id.
func (s *UserService) DeleteUser(actor policy.Actor, targetId int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var caller model.User
		if err := tx.First(&caller, actor.Id).Error; err != nil {
			if database.IsNotFound(err) {
				return policy.ErrPrivilegeRevoked
			}
			return err
		}
		if policy.Role(caller.Role) != policy.RoleAdmin {
			return policy.ErrPrivilegeRevoked
		}

		var target model.User
		if err := tx.First(&target, targetId).Error; err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("%w: user %d", ErrNotFound, targetId)
			}
			return err
		}

		adminCount, err := s.countAdmins(tx)
		if err != nil {
			return err
		}

		if err := policy.CheckUserDelete(actor, policy.Actor{Id: target.Id, Role: policy.Role(target.Role)}, adminCount); err != nil {
			return err
		}

		return tx.Delete(&model.User{}, targetId).Error
	})
}

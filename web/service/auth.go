package service

import (
	"fmt"
	"strings"

	"blogd/database"
	"blogd/database/model"
	"blogd/util/crypto"
	"blogd/web/policy"

	"gorm.io/gorm"
)

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	DB    *gorm.DB
	Token *TokenService
}

func NewAuthService(token *TokenService) *AuthService {
	return &AuthService{DB: database.GetDB(), Token: token}
}

// UserDTO is the public shape of a user record. The password hash never
// leaves the service layer.
type UserDTO struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toDTO(u *model.User) UserDTO {
	return UserDTO{Id: u.Id, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Register creates a new account. The very first account in the store becomes
// admin; everyone after starts as reader. The count and the insert run in one
// transaction so two concurrent first registrations cannot both become admin.
func (s *AuthService) Register(username, email, rawPassword string) (UserDTO, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return UserDTO{}, fmt.Errorf("%w: username required", ErrValidation)
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return UserDTO{}, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(rawPassword) < 6 {
		return UserDTO{}, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := crypto.HashPasswordAsBcrypt(rawPassword)
	if err != nil {
		return UserDTO{}, err
	}

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&model.User{}).
			Where("username = ? OR email = ?", username, email).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: username or email already taken", ErrValidation)
		}

		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			u.Role = string(policy.RoleAdmin)
		} else {
			u.Role = string(policy.RoleReader)
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return UserDTO{}, err
	}
	return toDTO(u), nil
}

// Login checks credentials and issues a token carrying the user's id and
// current role.
func (s *AuthService) Login(username, rawPassword string) (string, UserDTO, error) {
	var u model.User
	if err := s.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if database.IsNotFound(err) {
			return "", UserDTO{}, fmt.Errorf("%w: bad credentials", ErrValidation)
		}
		return "", UserDTO{}, err
	}
	if !crypto.CheckPasswordHash(u.PasswordHash, rawPassword) {
		return "", UserDTO{}, fmt.Errorf("%w: bad credentials", ErrValidation)
	}
	token, err := s.Token.Issue(u.Id, policy.Role(u.Role))
	if err != nil {
		return "", UserDTO{}, err
	}
	return token, toDTO(&u), nil
}

// Profile re-reads the caller's row; a not-found here means the account was
// deleted after the token was issued.
func (s *AuthService) Profile(userId int) (UserDTO, error) {
	var u model.User
	if err := s.DB.First(&u, userId).Error; err != nil {
		if database.IsNotFound(err) {
			return UserDTO{}, fmt.Errorf("%w: user %d", ErrNotFound, userId)
		}
		return UserDTO{}, err
	}
	return toDTO(&u), nil
}

package service

import (
	"errors"
	"time"

	"blogd/config"
	"blogd/logger"
	"blogd/util/random"
	"blogd/web/policy"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenValidity is the fixed lifetime of issued tokens. The role inside a
// token is a point-in-time snapshot: a demoted user keeps old privileges
// until the token expires or is reissued. Only the role-update path
// re-verifies against the store.
const tokenValidity = 30 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity assertion embedded in issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserId int         `json:"uid"`
	Role   policy.Role `json:"role"`
}

// TokenService issues and verifies HS256-signed identity tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService builds a service around the configured signing secret. When
// no secret is configured a random one is generated, which invalidates all
// outstanding tokens on restart.
func NewTokenService() *TokenService {
	secret := config.GetJWTSecret()
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("BLOGD_JWT_SECRET is not set, using a generated secret; tokens will not survive a restart")
	}
	return NewTokenServiceWithSecret(secret)
}

// NewTokenServiceWithSecret builds a service with an explicit signing secret.
func NewTokenServiceWithSecret(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token carrying the user's id and current role.
func (s *TokenService) Issue(userId int, role policy.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
		},
		UserId: userId,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

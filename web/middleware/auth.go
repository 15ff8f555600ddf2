// Package middleware provides gin middleware for the blogd API: bearer token
// authentication, role gating and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"blogd/web/entity"
	"blogd/web/policy"
	"blogd/web/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by TokenAuth.
const (
	CtxUserId = "user_id"
	CtxRole   = "role"
)

// TokenAuth verifies the Authorization bearer token and stores the caller's
// id and role snapshot in the request context.
func TokenAuth(token *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortMsg(c, http.StatusUnauthorized, "authorization required")
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortMsg(c, http.StatusUnauthorized, "bearer token required")
			return
		}

		claims, err := token.Verify(raw)
		if err != nil {
			abortMsg(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(CtxUserId, claims.UserId)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// Actor rebuilds the policy actor from context values set by TokenAuth.
func Actor(c *gin.Context) (policy.Actor, bool) {
	idVal, idOk := c.Get(CtxUserId)
	roleVal, roleOk := c.Get(CtxRole)
	if !idOk || !roleOk {
		return policy.Actor{}, false
	}
	id, idOk := idVal.(int)
	role, roleOk := roleVal.(policy.Role)
	if !idOk || !roleOk {
		return policy.Actor{}, false
	}
	return policy.Actor{Id: id, Role: role}, true
}

func abortMsg(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, entity.Msg{Success: false, Msg: msg})
}

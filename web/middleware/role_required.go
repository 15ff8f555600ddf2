package middleware

import (
	"net/http"

	"blogd/web/policy"

	"github.com/gin-gonic/gin"
)

// RequireRole allows the request through only when the token's role snapshot
// is in the given set. Must run after TokenAuth.
func RequireRole(roles ...policy.Role) gin.HandlerFunc {
	allowed := make(map[policy.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			abortMsg(c, http.StatusUnauthorized, "authorization required")
			return
		}
		if !allowed[actor.Role] {
			abortMsg(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

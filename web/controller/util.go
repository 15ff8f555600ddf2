// Package controller provides the HTTP request handlers of the blogd content
// API: authentication, user administration, posts and comments.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"blogd/logger"
	"blogd/web/entity"
	"blogd/web/policy"
	"blogd/web/service"

	"github.com/gin-gonic/gin"
)

// errMsg builds a failure envelope for inline binding errors.
func errMsg(msg string) entity.Msg {
	return entity.Msg{Success: false, Msg: msg}
}

// jsonObj sends a success envelope with obj.
func jsonObj(c *gin.Context, statusCode int, obj any) {
	c.JSON(statusCode, entity.Msg{Success: true, Obj: obj})
}

// jsonMsg sends a success envelope with a message only.
func jsonMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.Msg{Success: true, Msg: msg})
}

// jsonError maps a service error onto the HTTP taxonomy: validation 400,
// forbidden 403, not found 404, everything else 500.
func jsonError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, policy.ErrInvalidRole):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, policy.ErrPrivilegeRevoked),
		errors.Is(err, policy.ErrSelfModification),
		errors.Is(err, policy.ErrLastAdmin),
		errors.Is(err, policy.ErrAdminCeiling):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed:", err)
	}
	c.JSON(status, entity.Msg{Success: false, Msg: err.Error()})
}

// pathId parses a numeric path parameter; a malformed id is a 400.
func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.Msg{Success: false, Msg: "invalid " + name})
		return 0, false
	}
	return id, true
}

package controller

import (
	"net/http"

	"blogd/util/limiter"
	"blogd/web/middleware"
	"blogd/web/policy"
	"blogd/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController serves /api/auth: registration, login, profile and the
// admin-only user management endpoints.
type AuthController struct {
	auth  *service.AuthService
	users *service.UserService
	stats *service.StatsService
}

func NewAuthController(api *gin.RouterGroup, token *service.TokenService, authLimiter *limiter.Limiter) *AuthController {
	c := &AuthController{
		auth:  service.NewAuthService(token),
		users: service.NewUserService(),
		stats: service.NewStatsService(),
	}

	auth := api.Group("/auth")

	public := auth.Group("")
	public.Use(middleware.RateLimit(authLimiter, middleware.DefaultRateLimitConfig()))
	{
		public.POST("/register", c.register)
		public.POST("/login", c.login)
	}

	authed := auth.Group("")
	authed.Use(middleware.TokenAuth(token))
	{
		authed.GET("/profile", c.profile)
	}

	admin := auth.Group("")
	admin.Use(middleware.TokenAuth(token), middleware.RequireRole(policy.RoleAdmin))
	{
		admin.GET("/users", c.listUsers)
		admin.GET("/users/:id", c.getUser)
		admin.DELETE("/users/:id", c.deleteUser)
		admin.GET("/stats", c.getStats)
		admin.PUT("/update-role/:id", c.updateRole)
	}

	return c
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) register(ctx *gin.Context) {
	var req registerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errMsg("username, email and password required"))
		return
	}
	user, err := c.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusCreated, user)
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) login(ctx *gin.Context) {
	var req loginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errMsg("username and password required"))
		return
	}
	token, user, err := c.auth.Login(req.Username, req.Password)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, gin.H{"token": token, "user": user})
}

func (c *AuthController) profile(ctx *gin.Context) {
	actor, ok := middleware.Actor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, errMsg("authorization required"))
		return
	}
	user, err := c.auth.Profile(actor.Id)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, user)
}

func (c *AuthController) listUsers(ctx *gin.Context) {
	users, err := c.users.ListUsers()
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, users)
}

func (c *AuthController) getUser(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	user, err := c.users.GetUser(id)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, user)
}

func (c *AuthController) deleteUser(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	actor, _ := middleware.Actor(ctx)
	if err := c.users.DeleteUser(actor, id); err != nil {
		jsonError(ctx, err)
		return
	}
	jsonMsg(ctx, "user deleted")
}

func (c *AuthController) getStats(ctx *gin.Context) {
	stats, err := c.stats.GetStats()
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, stats)
}

type updateRoleReq struct {
	Role string `json:"role" binding:"required"`
}

func (c *AuthController) updateRole(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	var req updateRoleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errMsg("role required"))
		return
	}
	actor, _ := middleware.Actor(ctx)
	user, err := c.users.UpdateRole(actor, id, policy.Role(req.Role))
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, user)
}

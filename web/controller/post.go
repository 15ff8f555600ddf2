package controller

import (
	"net/http"

	"blogd/web/middleware"
	"blogd/web/service"

	"github.com/gin-gonic/gin"
)

// PostController serves /api/posts. Reads are public; writes go through the
// authorization policy in the service layer.
type PostController struct {
	posts *service.PostService
}

func NewPostController(api *gin.RouterGroup, token *service.TokenService) *PostController {
	c := &PostController{posts: service.NewPostService()}

	posts := api.Group("/posts")
	{
		posts.GET("", c.list)
		posts.GET("/:id", c.get)
	}

	authed := api.Group("/posts")
	authed.Use(middleware.TokenAuth(token))
	{
		authed.POST("", c.create)
		authed.PUT("/:id", c.update)
		authed.DELETE("/:id", c.delete)
		authed.POST("/:id/comments", c.addComment)
		authed.DELETE("/:id/comments/:commentId", c.deleteComment)
	}

	return c
}

func (c *PostController) list(ctx *gin.Context) {
	posts, err := c.posts.ListPosts()
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, posts)
}

func (c *PostController) get(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	post, err := c.posts.GetPost(id)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, post)
}

type postReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (c *PostController) create(ctx *gin.Context) {
	var req postReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errMsg("title and content required"))
		return
	}
	actor, _ := middleware.Actor(ctx)
	post, err := c.posts.CreatePost(actor, req.Title, req.Content)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusCreated, post)
}

func (c *PostController) update(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	var req postReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errMsg("title and content required"))
		return
	}
	actor, _ := middleware.Actor(ctx)
	post, err := c.posts.UpdatePost(actor, id, req.Title, req.Content)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusOK, post)
}

func (c *PostController) delete(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	actor, _ := middleware.Actor(ctx)
	if err := c.posts.DeletePost(actor, id); err != nil {
		jsonError(ctx, err)
		return
	}
	jsonMsg(ctx, "post deleted")
}

type commentReq struct {
	Body string `json:"body" binding:"required"`
}

func (c *PostController) addComment(ctx *gin.Context) {
	id, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	var req commentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errMsg("comment body required"))
		return
	}
	actor, _ := middleware.Actor(ctx)
	comment, err := c.posts.AddComment(actor, id, req.Body)
	if err != nil {
		jsonError(ctx, err)
		return
	}
	jsonObj(ctx, http.StatusCreated, comment)
}

func (c *PostController) deleteComment(ctx *gin.Context) {
	postId, ok := pathId(ctx, "id")
	if !ok {
		return
	}
	commentId, ok := pathId(ctx, "commentId")
	if !ok {
		return
	}
	actor, _ := middleware.Actor(ctx)
	if err := c.posts.DeleteComment(actor, postId, commentId); err != nil {
		jsonError(ctx, err)
		return
	}
	jsonMsg(ctx, "comment deleted")
}

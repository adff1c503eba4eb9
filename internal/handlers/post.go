package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/middleware"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/pkg/response"
)

type PostHandler struct {
	*CRUDHandler[models.Post]
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{
		CRUDHandler: NewCRUDHandler(posts.CRUDService),
		posts:       posts,
	}
}

// Mine lists the caller's posts
// GET /posts/user/me
func (h *PostHandler) Mine(c *gin.Context) {
	posts, err := h.posts.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// Create publishes a post owned by the caller
// POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req services.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.CreateFor(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Update replaces the message of a post
// PUT /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var req services.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.UpdateMessage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// Delete removes a post and its comments
// DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	post, err := h.posts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

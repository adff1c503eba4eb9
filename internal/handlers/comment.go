package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/middleware"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/pkg/response"
)

type CommentHandler struct {
	*CRUDHandler[models.Comment]
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{
		CRUDHandler: NewCRUDHandler(comments.CRUDService),
		comments:    comments,
	}
}

// ByPost lists the comments of a post, newest first
// GET /comments/post/:postId
func (h *CommentHandler) ByPost(c *gin.Context) {
	comments, err := h.comments.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.CreateFor(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.UpdateText(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

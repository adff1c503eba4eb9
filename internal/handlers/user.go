package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/middleware"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/pkg/response"
)

type UserHandler struct {
	*CRUDHandler[models.User]
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{
		CRUDHandler: NewCRUDHandler(users.CRUDService),
		users:       users,
	}
}

// Me returns the current logged-in user
// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateMe changes the caller's username, email or password
// PUT /users
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteMe removes the caller's account and signs out every session
// DELETE /users
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, err := h.users.DeleteAccount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

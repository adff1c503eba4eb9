package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/middleware"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/pkg/response"
)

type AuditHandler struct {
	audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Mine lists the caller's own write requests, newest first
// GET /users/me/audit
func (h *AuditHandler) Mine(c *gin.Context) {
	var req services.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries, err := h.audit.Recent(c.Request.Context(), middleware.GetUserID(c), req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

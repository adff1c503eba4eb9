package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/pkg/response"
)

// CRUDHandler serves the read and delete routes shared by all resources.
type CRUDHandler[T any] struct {
	svc *services.CRUDService[T]
}

func NewCRUDHandler[T any](svc *services.CRUDService[T]) *CRUDHandler[T] {
	return &CRUDHandler[T]{svc: svc}
}

// List returns all records; query parameters act as equality filters.
// GET /<resource>
func (h *CRUDHandler[T]) List(c *gin.Context) {
	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// Get returns a single record.
// GET /<resource>/:id
func (h *CRUDHandler[T]) Get(c *gin.Context) {
	item, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Delete removes a record and returns it.
// DELETE /<resource>/:id
func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	item, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func clientMeta(c *gin.Context) services.ClientMeta {
	return services.ClientMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

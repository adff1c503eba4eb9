package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/services"
	"github.com/postboard/api/pkg/response"
)

// OwnerLookup returns the owner of the resource with the given id, or the
// resource's not-found error.
type OwnerLookup func(ctx context.Context, id string) (string, error)

// OwnershipRequired lets the request through only when the resource named by
// the :id path parameter exists and belongs to the caller. Must run after
// AuthRequired.
func OwnershipRequired(lookup OwnerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}

		if owner != GetUserID(c) {
			response.Error(c, services.ErrForbidden)
			return
		}

		c.Next()
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

// pathID reads the :id route parameter. Entity ids are UUIDs, so anything else
// cannot name a stored row and is answered with 404 before reaching the store.
func pathID(c *gin.Context, notFound string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, notFound))
		return "", false
	}
	return id, true
}

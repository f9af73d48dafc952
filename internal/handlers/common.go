package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/services"
)

// pageQuery carries validated pagination; limit clamps to [1,100], offset to
// >= 0, defaulting to 10/0.
type pageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func bindPage(c *gin.Context) pageQuery {
	query := pageQuery{Limit: 10, Offset: 0}
	_ = c.ShouldBindQuery(&query)
	if query.Limit < 1 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	return query
}

func pageMeta(total int64, page pageQuery) gin.H {
	return gin.H{
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps the service error taxonomy onto status codes. Unmapped
// errors answer a generic 500 and never leak internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

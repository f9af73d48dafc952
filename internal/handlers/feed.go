package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/middleware"
	"github.com/socialhub/socialhub/internal/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed returns one page of posts by the caller and everyone they follow,
// newest first.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	page := bindPage(c)

	posts, total, err := h.feedService.GetFeed(c.Request.Context(), userID, page.Offset, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": posts,
		"meta": pageMeta(total, page),
	})
}

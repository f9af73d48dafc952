package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/middleware"
	"github.com/socialhub/socialhub/internal/services"
)

type FollowHandler struct {
	followService *services.FollowService
}

func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

type createFollowRequest struct {
	FollowedID uint `json:"followed_id" binding:"required"`
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req createFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	follow, err := h.followService.Follow(c.Request.Context(), userID, req.FollowedID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"follow": follow})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	followID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, followID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FollowHandler) GetFollowers(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	page := bindPage(c)

	follows, total, err := h.followService.Followers(c.Request.Context(), userID, page.Offset, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": follows,
		"meta": pageMeta(total, page),
	})
}

func (h *FollowHandler) GetFollowing(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	page := bindPage(c)

	follows, total, err := h.followService.Following(c.Request.Context(), userID, page.Offset, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": follows,
		"meta": pageMeta(total, page),
	})
}

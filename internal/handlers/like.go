package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/middleware"
	"github.com/socialhub/socialhub/internal/services"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

type createLikeRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

func (h *LikeHandler) LikePost(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req createLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	like, err := h.likeService.LikePost(c.Request.Context(), userID, req.PostID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"like": like})
}

func (h *LikeHandler) UnlikePost(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	likeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.likeService.UnlikePost(c.Request.Context(), userID, likeID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LikeHandler) GetLikesByPost(c *gin.Context) {
	raw := c.Query("post_id")
	postID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post_id is required"})
		return
	}
	page := bindPage(c)

	likes, total, err := h.likeService.ListByPost(c.Request.Context(), uint(postID), page.Offset, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": likes,
		"meta": pageMeta(total, page),
	})
}

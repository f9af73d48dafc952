package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/repository"
)

// HashtagHandler serves read-only hashtag lookups straight off the
// repository; there are no business rules here.
type HashtagHandler struct {
	hashtagRepo *repository.HashtagRepository
}

func NewHashtagHandler(hashtagRepo *repository.HashtagRepository) *HashtagHandler {
	return &HashtagHandler{hashtagRepo: hashtagRepo}
}

func (h *HashtagHandler) ListHashtags(c *gin.Context) {
	hashtags, err := h.hashtagRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hashtags})
}

func (h *HashtagHandler) GetHashtag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	hashtag, err := h.hashtagRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if hashtag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hashtag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hashtag": hashtag})
}

func (h *HashtagHandler) GetHashtagByName(c *gin.Context) {
	name := strings.ToLower(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	hashtag, err := h.hashtagRepo.GetByName(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if hashtag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hashtag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hashtag": hashtag})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/models"
	"github.com/socialhub/socialhub/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type activityQueryParams struct {
	ActivityType string `form:"activityType"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
}

// GetUserActivity returns one enriched page of a user's activity log. 404
// when :id names no user.
func (h *ActivityHandler) GetUserActivity(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	page := bindPage(c)

	var params activityQueryParams
	_ = c.ShouldBindQuery(&params)

	query := services.ActivityQuery{
		ActivityType: models.ActivityType(params.ActivityType),
		Offset:       page.Offset,
		Limit:        page.Limit,
	}

	if params.StartDate != "" {
		start, err := parseDate(params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		query.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := parseDate(params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		query.EndDate = &end
	}
	if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not precede startDate"})
		return
	}

	activities, total, err := h.activityService.GetUserActivity(c.Request.Context(), userID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": activities,
		"meta": pageMeta(total, page),
	})
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

package handler

import (
	"log"
	"time"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	analyticsService *usecase.AnalyticsService
}

func NewStatsHandler(analyticsService *usecase.AnalyticsService) *StatsHandler {
	return &StatsHandler{analyticsService: analyticsService}
}

// GetRecurringStats returns completion totals, rate, streak, and the dense
// per-day breakdown for ?start=YYYY-MM-DD&end=YYYY-MM-DD. Defaults to the
// last 30 days.
func (h *StatsHandler) GetRecurringStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}

	now := time.Now()
	start := model.DateOnly(now).AddDate(0, 0, -29)
	end := model.DateOnly(now)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(model.DateKeyLayout, raw)
		if err != nil {
			utils.BadRequest(c, "Start must be YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(model.DateKeyLayout, raw)
		if err != nil {
			utils.BadRequest(c, "End must be YYYY-MM-DD")
			return
		}
		end = parsed
	}
	if end.Before(start) {
		utils.BadRequest(c, "End must not be before start")
		return
	}

	stats, err := h.analyticsService.RecurringStats(c.Request.Context(), userID.(string), start, end, now)
	if err != nil {
		log.Printf("Error computing recurring stats for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to compute stats")
		return
	}

	utils.Success(c, stats)
}

// GetMissedOccurrences lists a todo's past occurrences with no completion.
func (h *StatsHandler) GetMissedOccurrences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}
	todoID := c.Param("id")

	missed, err := h.analyticsService.MissedOccurrences(c.Request.Context(), userID.(string), todoID, time.Now())
	if err != nil {
		log.Printf("Error listing missed occurrences for todo %s: %v", todoID, err)
		utils.InternalError(c, "Failed to list missed occurrences")
		return
	}

	utils.Success(c, missed)
}

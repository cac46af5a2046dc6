package handler

import (
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/recurrence"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type RecurrenceHandler struct {
	recurringService *usecase.RecurringService
}

func NewRecurrenceHandler(recurringService *usecase.RecurringService) *RecurrenceHandler {
	return &RecurrenceHandler{recurringService: recurringService}
}

// ParseDescription turns free text like "every mon, wed and fri" into a
// structured pattern. An unrecognized phrase is a 400 so the client can fall
// back to its structured editor, not a server failure.
func (h *RecurrenceHandler) ParseDescription(c *gin.Context) {
	var req dto.ParseDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Text is required")
		return
	}

	pattern := recurrence.ParseDescription(req.Text)
	if pattern == nil {
		utils.TrackParseFailure()
		utils.BadRequest(c, "Could not recognize a recurrence in the text")
		return
	}

	utils.Success(c, dto.PatternResponse{
		Pattern:     pattern,
		Description: recurrence.FormatPattern(*pattern),
	})
}

// DescribePattern renders a structured pattern back to prose.
func (h *RecurrenceHandler) DescribePattern(c *gin.Context) {
	var req dto.DescribePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Pattern is required")
		return
	}
	if err := req.Pattern.Validate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.PatternResponse{
		Pattern:     &req.Pattern,
		Description: recurrence.FormatPattern(req.Pattern),
	})
}

// Preview computes the next due date and notification time for a pattern
// without touching any stored todo.
func (h *RecurrenceHandler) Preview(c *gin.Context) {
	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Pattern and from date are required")
		return
	}
	if err := req.Pattern.Validate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	pattern := req.Pattern.Normalized()
	resp := dto.PreviewResponse{}

	next, ok := recurrence.NextOccurrence(pattern, req.From, req.CompletedOccurrences)
	if !ok {
		resp.SeriesEnded = true
		utils.Success(c, resp)
		return
	}
	resp.NextDue = &next

	if notify, ok := recurrence.NextNotificationTime(pattern, req.From); ok {
		resp.NextNotifyTime = &notify
	}

	utils.Success(c, resp)
}

// Occurrences enumerates the pattern's matching dates within a range.
func (h *RecurrenceHandler) Occurrences(c *gin.Context) {
	var req dto.OccurrencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Pattern, start and end are required")
		return
	}
	if err := req.Pattern.Validate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	start, err := time.Parse(model.DateKeyLayout, req.Start)
	if err != nil {
		utils.BadRequest(c, "Start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(model.DateKeyLayout, req.End)
	if err != nil {
		utils.BadRequest(c, "End must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		utils.BadRequest(c, "End must not be before start")
		return
	}

	dates := recurrence.OccurrencesBetween(req.Pattern.Normalized(), req.Anchor, start, end)
	resp := dto.OccurrencesResponse{Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, model.DateKey(d))
	}
	utils.Success(c, resp)
}

// CompleteOccurrence finishes the current occurrence of a recurring todo and
// advances its schedule. A series reaching its end is a success response
// with series_ended set, never an error.
func (h *RecurrenceHandler) CompleteOccurrence(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}
	todoID := c.Param("id")

	result, err := h.recurringService.CompleteOccurrence(c.Request.Context(), userID.(string), todoID, time.Now())
	if err != nil {
		if err.Error() == "todo not found" {
			utils.NotFound(c, "Todo not found")
			return
		}
		log.Printf("Error completing occurrence for todo %s: %v", todoID, err)
		utils.InternalError(c, "Failed to complete occurrence")
		return
	}

	utils.Success(c, result)
}

// NextNotification reports when the todo's next reminder notification fires.
// A null next_notify_time means the pattern carries no notification clock or
// the series has ended.
func (h *RecurrenceHandler) NextNotification(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}
	todoID := c.Param("id")

	at, err := h.recurringService.NextNotification(c.Request.Context(), userID.(string), todoID, time.Now())
	if err != nil {
		if err.Error() == "todo not found" {
			utils.NotFound(c, "Todo not found")
			return
		}
		log.Printf("Error computing next notification for todo %s: %v", todoID, err)
		utils.InternalError(c, "Failed to compute next notification")
		return
	}

	utils.Success(c, dto.NextNotificationResponse{NextNotifyTime: at})
}

// CorrectOccurrence retroactively marks one scheduled occurrence completed
// or uncompleted, idempotently.
func (h *RecurrenceHandler) CorrectOccurrence(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid identity")
		return
	}
	todoID := c.Param("id")

	var req dto.CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Scheduled date is required")
		return
	}

	scheduled, err := time.Parse(model.DateKeyLayout, req.ScheduledDate)
	if err != nil {
		utils.BadRequest(c, "Scheduled date must be YYYY-MM-DD")
		return
	}

	outcome, err := h.recurringService.SetCompletion(c.Request.Context(), userID.(string), todoID, scheduled, req.Completed, time.Now())
	if err != nil {
		log.Printf("Error correcting occurrence for todo %s: %v", todoID, err)
		utils.InternalError(c, "Failed to correct occurrence")
		return
	}

	utils.Success(c, dto.CorrectionResponse{Outcome: string(outcome)})
}

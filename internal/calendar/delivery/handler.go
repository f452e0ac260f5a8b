package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	authusecase "focusplan-backend/internal/auth/usecase"
	"focusplan-backend/internal/calendar/usecase"
	"focusplan-backend/pkg/gcal"

	"github.com/gin-gonic/gin"
)

// CalendarHandler handles HTTP requests for calendar reads
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{calendarUsecase: calendarUsecase}
}

// GetEvents lists upcoming events
// GET /api/calendar/events?time_min=...&time_max=...&max_results=20
func (h *CalendarHandler) GetEvents(c *gin.Context) {
	userID := c.GetString("userID")

	var timeMin, timeMax time.Time
	if v := c.Query("time_min"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "time_min must be RFC3339"})
			return
		}
		timeMin = t
	}
	if v := c.Query("time_max"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "time_max must be RFC3339"})
			return
		}
		timeMax = t
	}
	maxResults, _ := strconv.ParseInt(c.DefaultQuery("max_results", "20"), 10, 64)

	events, err := h.calendarUsecase.ListEvents(c.Request.Context(), userID, timeMin, timeMax, maxResults)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetContext returns upcoming events with their plain-text summary
// GET /api/calendar/context
func (h *CalendarHandler) GetContext(c *gin.Context) {
	userID := c.GetString("userID")

	eventContext, err := h.calendarUsecase.EventContext(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, eventContext)
}

// GetCalendars lists the user's calendars
// GET /api/calendar/calendars
func (h *CalendarHandler) GetCalendars(c *gin.Context) {
	userID := c.GetString("userID")

	calendars, err := h.calendarUsecase.ListCalendars(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calendars": calendars})
}

func (h *CalendarHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authusecase.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google account not connected"})
	case errors.Is(err, gcal.ErrAuthExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, gcal.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

package delivery

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"
	taskdomain "focusplan-backend/internal/task/domain"
	"focusplan-backend/pkg/gcal"

	"github.com/gin-gonic/gin"
)

// eventSyncer is the slice of the calendar service the proxy needs.
type eventSyncer interface {
	UpsertEvent(ctx context.Context, creds *authdomain.TokenBundle, task *taskdomain.Task, calendarID string) (string, error)
}

// SyncProxyHandler exposes the stateless sync endpoint used by clients that
// manage their own Google tokens. The caller sends the raw access token and
// the task payload; nothing is persisted server-side.
type SyncProxyHandler struct {
	syncer eventSyncer
	origin string
}

// NewSyncProxyHandler creates a new SyncProxyHandler
func NewSyncProxyHandler(syncer eventSyncer, corsOrigin string) *SyncProxyHandler {
	return &SyncProxyHandler{syncer: syncer, origin: corsOrigin}
}

type syncTaskPayload struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ScheduledTime string `json:"scheduledTime"`
	EndTime       string `json:"endTime"`
	GoogleEventID string `json:"googleEventId"`
}

type syncTaskRequest struct {
	Task       *syncTaskPayload `json:"task"`
	CalendarID string           `json:"calendarId"`
}

// SyncTask pushes one task straight to Google Calendar
// POST /api/sync-task
func (h *SyncProxyHandler) SyncTask(c *gin.Context) {
	h.setCORSHeaders(c)

	accessToken := bearerToken(c.GetHeader("Authorization"))
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
		return
	}

	var req syncTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Task == nil || strings.TrimSpace(req.Task.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task with a title is required"})
		return
	}

	task := &taskdomain.Task{
		ID:            req.Task.ID,
		Title:         req.Task.Title,
		Notes:         req.Task.Description,
		GoogleEventID: req.Task.GoogleEventID,
	}
	if scheduled, err := parseProxyTime(req.Task.ScheduledTime); err == nil {
		task.ScheduledTime = scheduled
	}
	if end, err := parseProxyTime(req.Task.EndTime); err == nil {
		task.EndTime = &end
	}

	creds := &authdomain.TokenBundle{AccessToken: accessToken}
	eventID, err := h.syncer.UpsertEvent(c.Request.Context(), creds, task, req.CalendarID)
	if err != nil {
		switch {
		case errors.Is(err, gcal.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gcal.ErrAuthExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"eventId": eventID})
}

// Preflight answers the CORS preflight for the sync endpoint
// OPTIONS /api/sync-task
func (h *SyncProxyHandler) Preflight(c *gin.Context) {
	h.setCORSHeaders(c)
	c.Status(http.StatusNoContent)
}

func (h *SyncProxyHandler) setCORSHeaders(c *gin.Context) {
	origin := h.origin
	if origin == "" {
		origin = "*"
	}
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func parseProxyTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, format := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp")
}

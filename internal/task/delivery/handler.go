package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/gcal"

	authusecase "focusplan-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for tasks
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

// CreateTaskRequest is the JSON body for creating a task
type CreateTaskRequest struct {
	Title         string `json:"title" binding:"required"`
	Notes         string `json:"notes"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`
	EndTime       string `json:"end_time"`
	AutoSync      bool   `json:"auto_sync"`
	CalendarID    string `json:"calendar_id"`
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, conflicts, err := h.taskUsecase.CreateTask(c.Request.Context(), userID, usecase.CreateTaskRequest{
		Title:         req.Title,
		Notes:         req.Notes,
		ScheduledTime: req.ScheduledTime,
		EndTime:       req.EndTime,
		AutoSync:      req.AutoSync,
		CalendarID:    req.CalendarID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task, "conflicts": conflicts})
}

// GetTasks lists the user's tasks with optional status filter and paging
// GET /api/tasks?status=pending&limit=20&offset=0
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	tasks, total, err := h.taskUsecase.GetUserTasks(userID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": total})
}

// GetTask returns one task
// GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID := c.GetString("userID")

	task, err := h.taskUsecase.GetTaskByID(userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask applies a partial update to a task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var updates usecase.TaskUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(userID, c.Param("id"), updates)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask deletes a task and its linked calendar event
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.taskUsecase.DeleteTask(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// SyncTask mirrors one task to the calendar
// POST /api/tasks/:id/sync
func (h *TaskHandler) SyncTask(c *gin.Context) {
	userID := c.GetString("userID")

	task, err := h.taskUsecase.SyncTask(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task, "event_id": task.GoogleEventID})
}

// SyncAllPending syncs every pending task
// POST /api/tasks/sync
func (h *TaskHandler) SyncAllPending(c *gin.Context) {
	userID := c.GetString("userID")

	report, err := h.taskUsecase.SyncAllPending(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// CheckConflicts reports overlapping tasks and events for a candidate slot
// GET /api/tasks/conflicts?date=2024-06-01&start_time=18:00&end_time=19:00
func (h *TaskHandler) CheckConflicts(c *gin.Context) {
	userID := c.GetString("userID")

	date := c.Query("date")
	startTime := c.Query("start_time")
	endTime := c.Query("end_time")
	if date == "" || startTime == "" || endTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, start_time and end_time are required"})
		return
	}

	report, err := h.taskUsecase.CheckConflicts(c.Request.Context(), userID, date, startTime, endTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// respondError maps usecase errors onto HTTP status codes.
func (h *TaskHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Task belongs to another user"})
	case errors.Is(err, authusecase.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google account not connected"})
	case errors.Is(err, gcal.ErrAuthExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, gcal.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gcal.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

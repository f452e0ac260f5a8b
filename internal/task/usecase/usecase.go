package usecase

import (
	"context"
	"errors"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"
	"focusplan-backend/internal/task/domain"

	"google.golang.org/api/calendar/v3"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task, reports advisory schedule conflicts and
	// optionally syncs it to the calendar right away.
	CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, []Conflict, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(userID, taskID string) (*domain.Task, error)

	// GetUserTasks retrieves all tasks for a user with optional status filter
	GetUserTasks(userID string, status *string, limit, offset int) ([]*domain.Task, int64, error)

	// UpdateTask updates an existing task. Edits to title, notes or the time
	// window reset the task to pending until it is re-synced.
	UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// DeleteTask deletes a task, removing the linked calendar event when one
	// exists and credentials are available.
	DeleteTask(ctx context.Context, userID, taskID string) error

	// SyncTask mirrors a task as a calendar event and marks it scheduled.
	SyncTask(ctx context.Context, userID, taskID string) (*domain.Task, error)

	// SyncAllPending syncs every unsynced task one at a time. A failing item
	// is recorded and does not abort the batch.
	SyncAllPending(ctx context.Context, userID string) (*SyncReport, error)

	// FindByKeyword returns tasks whose title or notes contain the keyword,
	// case-insensitively.
	FindByKeyword(userID, keyword string) ([]*domain.Task, error)

	// CheckConflicts reports local tasks and remote events overlapping the
	// candidate interval on the same calendar day. Advisory only.
	CheckConflicts(ctx context.Context, userID, date, startTime, endTime string) (*ConflictReport, error)
}

// CreateTaskRequest carries the fields for a new task
type CreateTaskRequest struct {
	Title         string
	Notes         string
	ScheduledTime string
	EndTime       string
	AutoSync      bool
	CalendarID    string
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Title         *string `json:"title,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ScheduledTime *string `json:"scheduled_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
}

// SyncResult records the outcome of one item in a batch sync
type SyncResult struct {
	TaskID  string `json:"task_id"`
	Title   string `json:"title"`
	EventID string `json:"event_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SyncReport summarizes a batch sync
type SyncReport struct {
	Synced  int          `json:"synced"`
	Failed  int          `json:"failed"`
	Results []SyncResult `json:"results"`
}

// Conflict is an overlapping local task or remote event
type Conflict struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Source    string `json:"source"` // "task" or "calendar"
}

// ConflictReport is the advisory result of a conflict check
type ConflictReport struct {
	HasConflicts bool       `json:"has_conflicts"`
	Conflicts    []Conflict `json:"conflicts"`
}

// CalendarService defines the calendar operations the usecase needs
type CalendarService interface {
	UpsertEvent(ctx context.Context, creds *authdomain.TokenBundle, task *domain.Task, calendarID string) (string, error)
	DeleteEvent(ctx context.Context, creds *authdomain.TokenBundle, eventID, calendarID string) error
	ListEvents(ctx context.Context, creds *authdomain.TokenBundle, timeMin, timeMax time.Time, maxResults int64, calendarID string) ([]*calendar.Event, error)
}

// TokenProvider supplies valid Google credentials for a user
type TokenProvider interface {
	EnsureAuthenticated(ctx context.Context, userID string) (*authdomain.TokenBundle, error)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	authusecase "focusplan-backend/internal/auth/usecase"
	"focusplan-backend/internal/task/domain"
	"focusplan-backend/internal/task/repository"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
)

const maxTasksPerUser = 500

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo          repository.TaskRepository
	calendar          CalendarService
	tokens            TokenProvider
	defaultCalendarID string
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, calendarSvc CalendarService, tokens TokenProvider, defaultCalendarID string) TaskUsecase {
	return &taskUsecase{
		taskRepo:          taskRepo,
		calendar:          calendarSvc,
		tokens:            tokens,
		defaultCalendarID: defaultCalendarID,
	}
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, []Conflict, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, nil, errors.New("task title is required")
	}

	scheduled, err := parseTaskTime(req.ScheduledTime)
	if err != nil {
		return nil, nil, fmt.Errorf("scheduled time must be a valid timestamp: %v", err)
	}

	task := &domain.Task{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         req.Title,
		Notes:         req.Notes,
		ScheduledTime: scheduled,
		Status:        domain.TaskStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if req.EndTime != "" {
		if end, err := parseTaskTime(req.EndTime); err == nil {
			task.EndTime = &end
		}
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, nil, err
	}

	// Conflicts are advisory: they never block the write.
	conflicts := u.advisoryConflicts(ctx, task)

	if req.AutoSync {
		if synced, err := u.syncOne(ctx, task, req.CalendarID); err != nil {
			log.Printf("[TaskUsecase] automatic sync failed for task %s: %v", task.ID, err)
		} else {
			task = synced
		}
	}

	return task, conflicts, nil
}

func (u *taskUsecase) GetTaskByID(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.UserID != userID {
		return nil, ErrUnauthorized
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(userID string, status *string, limit, offset int) ([]*domain.Task, int64, error) {
	var statusFilter *domain.TaskStatus
	if status != nil && *status != "" {
		s := domain.TaskStatus(*status)
		statusFilter = &s
	}
	if limit <= 0 {
		limit = 50
	}
	return u.taskRepo.FindByUserID(userID, statusFilter, limit, offset)
}

func (u *taskUsecase) UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	edited := false
	if updates.Title != nil && *updates.Title != task.Title {
		task.Title = *updates.Title
		edited = true
	}
	if updates.Notes != nil && *updates.Notes != task.Notes {
		task.Notes = *updates.Notes
		edited = true
	}
	if updates.ScheduledTime != nil {
		if scheduled, err := parseTaskTime(*updates.ScheduledTime); err == nil && !scheduled.Equal(task.ScheduledTime) {
			task.ScheduledTime = scheduled
			edited = true
		}
	}
	if updates.EndTime != nil {
		if *updates.EndTime == "" {
			if task.EndTime != nil {
				task.EndTime = nil
				edited = true
			}
		} else if end, err := parseTaskTime(*updates.EndTime); err == nil {
			if task.EndTime == nil || !end.Equal(*task.EndTime) {
				task.EndTime = &end
				edited = true
			}
		}
	}

	// Edits invalidate the remote mirror. The event id is kept so the next
	// sync patches the existing event rather than creating a second one.
	if edited && task.Status == domain.TaskStatusScheduled {
		task.Status = domain.TaskStatusPending
	}

	task.UpdatedAt = time.Now()
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}

	if task.GoogleEventID != "" {
		creds, err := u.tokens.EnsureAuthenticated(ctx, userID)
		switch {
		case errors.Is(err, authusecase.ErrAuthRequired):
			// Local store is the source of truth; the orphaned event is
			// left behind when no credentials are available.
			log.Printf("[TaskUsecase] skipping remote delete for task %s: not authenticated", task.ID)
		case err != nil:
			return err
		default:
			if err := u.calendar.DeleteEvent(ctx, creds, task.GoogleEventID, ""); err != nil {
				return err
			}
		}
	}

	return u.taskRepo.Delete(task.ID)
}

func (u *taskUsecase) SyncTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}
	return u.syncOne(ctx, task, "")
}

// syncOne obtains credentials, upserts the event and persists the result.
// On failure the task is left pending and the store untouched.
func (u *taskUsecase) syncOne(ctx context.Context, task *domain.Task, calendarID string) (*domain.Task, error) {
	if calendarID == "" {
		calendarID = u.defaultCalendarID
	}

	creds, err := u.tokens.EnsureAuthenticated(ctx, task.UserID)
	if err != nil {
		return nil, err
	}

	eventID, err := u.calendar.UpsertEvent(ctx, creds, task, calendarID)
	if err != nil {
		return nil, err
	}

	task.GoogleEventID = eventID
	task.Status = domain.TaskStatusScheduled
	task.UpdatedAt = time.Now()
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SyncAllPending(ctx context.Context, userID string) (*SyncReport, error) {
	pending := domain.TaskStatusPending
	tasks, _, err := u.taskRepo.FindByUserID(userID, &pending, maxTasksPerUser, 0)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}
	for _, task := range tasks {
		result := SyncResult{TaskID: task.ID, Title: task.Title}
		if synced, err := u.syncOne(ctx, task, ""); err != nil {
			// One failing item never aborts the batch; earlier successes
			// are already persisted.
			result.Error = err.Error()
			report.Failed++
			log.Printf("[TaskUsecase] batch sync failed for task %s: %v", task.ID, err)
		} else {
			result.EventID = synced.GoogleEventID
			report.Synced++
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

func (u *taskUsecase) FindByKeyword(userID, keyword string) ([]*domain.Task, error) {
	tasks, _, err := u.taskRepo.FindByUserID(userID, nil, maxTasksPerUser, 0)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	var matched []*domain.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Notes), needle) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

func (u *taskUsecase) CheckConflicts(ctx context.Context, userID, date, startTime, endTime string) (*ConflictReport, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %v", err)
	}
	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return nil, fmt.Errorf("start time must be HH:MM: %v", err)
	}
	end, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return nil, fmt.Errorf("end time must be HH:MM: %v", err)
	}

	startMin := minutesOfDay(start)
	endMin := minutesOfDay(end)

	localTasks, err := u.taskRepo.FindByDate(userID, day)
	if err != nil {
		return nil, err
	}
	conflicts := taskConflicts(localTasks, day, startMin, endMin, "")

	// Remote events are best-effort: when the fetch fails or the user is
	// not authenticated, only local conflicts are reported.
	if events := u.fetchDayEvents(ctx, userID, day); events != nil {
		conflicts = append(conflicts, eventConflicts(events, day, startMin, endMin)...)
	}

	return &ConflictReport{HasConflicts: len(conflicts) > 0, Conflicts: conflicts}, nil
}

func (u *taskUsecase) advisoryConflicts(ctx context.Context, task *domain.Task) []Conflict {
	startMin := minutesOfDay(task.ScheduledTime)
	endMin := startMin + 60
	if task.EndTime != nil && task.EndTime.After(task.ScheduledTime) {
		endMin = minutesOfDay(*task.EndTime)
	}
	day := task.ScheduledTime

	localTasks, err := u.taskRepo.FindByDate(task.UserID, day)
	if err != nil {
		log.Printf("[TaskUsecase] conflict scan failed: %v", err)
		return nil
	}
	conflicts := taskConflicts(localTasks, day, startMin, endMin, task.ID)

	if events := u.fetchDayEvents(ctx, task.UserID, day); events != nil {
		conflicts = append(conflicts, eventConflicts(events, day, startMin, endMin)...)
	}
	return conflicts
}

// fetchDayEvents lists the user's events for one calendar day. Returns nil
// when credentials are missing or the remote fetch fails.
func (u *taskUsecase) fetchDayEvents(ctx context.Context, userID string, day time.Time) []*calendar.Event {
	creds, err := u.tokens.EnsureAuthenticated(ctx, userID)
	if err != nil {
		log.Printf("[TaskUsecase] conflict check running local-only: %v", err)
		return nil
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	events, err := u.calendar.ListEvents(ctx, creds, dayStart, dayStart.AddDate(0, 0, 1), 100, "")
	if err != nil {
		log.Printf("[TaskUsecase] calendar fetch failed, conflict check running local-only: %v", err)
		return nil
	}
	return events
}

func parseTaskTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("timestamp is empty")
	}
	formats := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

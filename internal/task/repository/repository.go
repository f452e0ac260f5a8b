package repository

import (
	"time"

	"focusplan-backend/internal/task/domain"
)

// TaskRepository defines persistence for tasks
type TaskRepository interface {
	Create(task *domain.Task) error
	FindByID(id string) (*domain.Task, error)
	FindByUserID(userID string, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error)
	// FindByDate returns the user's tasks whose scheduled time falls on the
	// given calendar day.
	FindByDate(userID string, day time.Time) ([]*domain.Task, error)
	Update(task *domain.Task) error
	Delete(id string) error
}

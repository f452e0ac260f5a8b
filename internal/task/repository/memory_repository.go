package repository

import (
	"sort"
	"sync"
	"time"

	"focusplan-backend/internal/task/domain"

	"github.com/google/uuid"
)

// memoryTaskRepository keeps tasks in process memory. Used when no database
// is configured and by tests.
type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// NewMemoryTaskRepository creates an in-memory TaskRepository
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{tasks: make(map[string]domain.Task)}
}

func (r *memoryTaskRepository) Create(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepository) FindByID(id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := task
	return &copied, nil
}

func (r *memoryTaskRepository) FindByUserID(userID string, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Task
	for id := range r.tasks {
		task := r.tasks[id]
		if task.UserID != userID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		copied := task
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ScheduledTime.Equal(matched[j].ScheduledTime) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ScheduledTime.Before(matched[j].ScheduledTime)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *memoryTaskRepository) FindByDate(userID string, day time.Time) ([]*domain.Task, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Task
	for id := range r.tasks {
		task := r.tasks[id]
		if task.UserID != userID {
			continue
		}
		if task.ScheduledTime.Before(dayStart) || !task.ScheduledTime.Before(dayEnd) {
			continue
		}
		copied := task
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ScheduledTime.Before(matched[j].ScheduledTime)
	})
	return matched, nil
}

func (r *memoryTaskRepository) Update(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

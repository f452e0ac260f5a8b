package domain

import "time"

// TaskStatus represents the sync state of a task
type TaskStatus string

const (
	// TaskStatusPending means no current calendar event mirrors this task.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusScheduled means a calendar event exists and is believed current.
	TaskStatusScheduled TaskStatus = "scheduled"
)

// Task is a local planning record for an intended activity with a time window
type Task struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"user_id" gorm:"index;not null"`
	Title         string     `json:"title" gorm:"not null"`
	Notes         string     `json:"notes,omitempty"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        TaskStatus `json:"status" gorm:"default:pending"`
	// GoogleEventID is the linked remote event. It survives edits so a
	// re-sync patches the same event instead of creating a duplicate.
	GoogleEventID string    `json:"google_event_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Synced reports whether the remote mirror is believed current.
func (t *Task) Synced() bool {
	return t.Status == TaskStatusScheduled && t.GoogleEventID != ""
}

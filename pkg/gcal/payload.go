package gcal

import (
	"fmt"
	"time"

	taskdomain "focusplan-backend/internal/task/domain"

	"google.golang.org/api/calendar/v3"
)

// defaultEventDuration is used when a task has no usable end time.
const defaultEventDuration = time.Hour

// BuildEventPayload converts a task into a calendar event body. The start is
// the task's scheduled time. The end is the task's end time only when it is
// strictly after the start; a missing, zero or earlier end time silently
// becomes start + 1 hour.
func BuildEventPayload(task *taskdomain.Task) (*calendar.Event, error) {
	if task == nil || task.ScheduledTime.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", ErrValidation)
	}

	start := task.ScheduledTime
	end := start.Add(defaultEventDuration)
	if task.EndTime != nil && task.EndTime.After(start) {
		end = *task.EndTime
	}

	return &calendar.Event{
		Summary:     task.Title,
		Description: task.Notes,
		Start:       &calendar.EventDateTime{DateTime: start.Format(eventTimeLayout)},
		End:         &calendar.EventDateTime{DateTime: end.Format(eventTimeLayout)},
	}, nil
}

// eventTimeLayout is a local wall-clock timestamp; the calendar resolves it
// against the calendar's own time zone.
const eventTimeLayout = "2006-01-02T15:04:05"

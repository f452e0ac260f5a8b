package usecase

import (
	"time"

	"focusplan-backend/internal/task/domain"

	"google.golang.org/api/calendar/v3"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// minutesOfDay converts a wall-clock time to minutes since midnight.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// intervalsOverlap uses the half-open test: touching endpoints do not
// count as a conflict.
func intervalsOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// taskConflicts returns the tasks on the given day whose interval overlaps
// [startMin, endMin). A task without an end time occupies one hour.
func taskConflicts(tasks []*domain.Task, day time.Time, startMin, endMin int, excludeID string) []Conflict {
	var conflicts []Conflict
	date := day.Format(dateLayout)

	for _, task := range tasks {
		if task.ID == excludeID {
			continue
		}
		if task.ScheduledTime.Format(dateLayout) != date {
			continue
		}
		taskStart := minutesOfDay(task.ScheduledTime)
		taskEnd := taskStart + 60
		if task.EndTime != nil && task.EndTime.After(task.ScheduledTime) {
			if task.EndTime.Format(dateLayout) != date {
				// Crosses midnight; the portion on this day runs to 24:00.
				taskEnd = 24 * 60
			} else {
				taskEnd = minutesOfDay(*task.EndTime)
			}
		}
		if intervalsOverlap(startMin, endMin, taskStart, taskEnd) {
			conflicts = append(conflicts, Conflict{
				Title:     task.Title,
				Date:      date,
				StartTime: task.ScheduledTime.Format(timeLayout),
				EndTime:   minutesToClock(taskEnd),
				Source:    "task",
			})
		}
	}
	return conflicts
}

// eventConflicts returns the remote events on the given day whose interval
// overlaps [startMin, endMin). All-day events are excluded.
func eventConflicts(events []*calendar.Event, day time.Time, startMin, endMin int) []Conflict {
	var conflicts []Conflict
	date := day.Format(dateLayout)

	for _, event := range events {
		if event.Start == nil || event.End == nil || event.Start.DateTime == "" {
			// All-day events carry only a date; they never conflict.
			continue
		}
		eventStart, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			continue
		}
		eventEnd, err := time.Parse(time.RFC3339, event.End.DateTime)
		if err != nil {
			continue
		}
		if eventStart.Format(dateLayout) != date {
			continue
		}
		startOfDay := minutesOfDay(eventStart)
		endOfDay := minutesOfDay(eventEnd)
		if eventEnd.Format(dateLayout) != date {
			endOfDay = 24 * 60
		}
		if intervalsOverlap(startMin, endMin, startOfDay, endOfDay) {
			title := event.Summary
			if title == "" {
				title = "(untitled)"
			}
			conflicts = append(conflicts, Conflict{
				Title:     title,
				Date:      date,
				StartTime: eventStart.Format(timeLayout),
				EndTime:   eventEnd.Format(timeLayout),
				Source:    "calendar",
			})
		}
	}
	return conflicts
}

func minutesToClock(minutes int) string {
	if minutes >= 24*60 {
		minutes = 24*60 - 1
	}
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(timeLayout)
}

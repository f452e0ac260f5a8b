package usecase

import (
	"context"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"

	"google.golang.org/api/calendar/v3"
)

// EventContext is the assistant-facing view of the calendar: the raw events,
// the window they were fetched for and a plain-text rendering.
type EventContext struct {
	Summary string            `json:"summary"`
	Events  []*calendar.Event `json:"events"`
	TimeMin time.Time         `json:"time_min"`
	TimeMax time.Time         `json:"time_max"`
}

// CalendarUsecase defines the interface for calendar read operations
type CalendarUsecase interface {
	// ListEvents returns the user's upcoming events in the given window.
	ListEvents(ctx context.Context, userID string, timeMin, timeMax time.Time, maxResults int64) ([]*calendar.Event, error)

	// EventContext fetches the next two months of events with their summary.
	EventContext(ctx context.Context, userID string) (*EventContext, error)

	// ContextSummary renders the user's next two months of events as plain
	// text suitable for an assistant prompt.
	ContextSummary(ctx context.Context, userID string) (string, error)

	// ListCalendars returns the user's calendar list.
	ListCalendars(ctx context.Context, userID string) ([]*calendar.CalendarListEntry, error)
}

// EventLister is the slice of the calendar client this usecase needs
type EventLister interface {
	ListEvents(ctx context.Context, creds *authdomain.TokenBundle, timeMin, timeMax time.Time, maxResults int64, calendarID string) ([]*calendar.Event, error)
	ListCalendars(ctx context.Context, creds *authdomain.TokenBundle) ([]*calendar.CalendarListEntry, error)
}

// TokenProvider supplies valid Google credentials for a user
type TokenProvider interface {
	EnsureAuthenticated(ctx context.Context, userID string) (*authdomain.TokenBundle, error)
}

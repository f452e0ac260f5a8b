package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
)

const (
	// contextWindow is how far ahead the assistant can see.
	contextWindow = 2 * 30 * 24 * time.Hour
	// contextMaxEvents caps the events fed into the prompt.
	contextMaxEvents = 250
	// snippetLimit truncates long descriptions and locations.
	snippetLimit = 100
)

type calendarUsecase struct {
	events EventLister
	tokens TokenProvider
}

// NewCalendarUsecase creates a new instance of calendarUsecase
func NewCalendarUsecase(events EventLister, tokens TokenProvider) CalendarUsecase {
	return &calendarUsecase{events: events, tokens: tokens}
}

func (u *calendarUsecase) ListEvents(ctx context.Context, userID string, timeMin, timeMax time.Time, maxResults int64) ([]*calendar.Event, error) {
	creds, err := u.tokens.EnsureAuthenticated(ctx, userID)
	if err != nil {
		return nil, err
	}
	if timeMin.IsZero() {
		timeMin = time.Now()
	}
	return u.events.ListEvents(ctx, creds, timeMin, timeMax, maxResults, "")
}

func (u *calendarUsecase) EventContext(ctx context.Context, userID string) (*EventContext, error) {
	now := time.Now()
	timeMax := now.Add(contextWindow)
	events, err := u.ListEvents(ctx, userID, now, timeMax, contextMaxEvents)
	if err != nil {
		return nil, err
	}
	return &EventContext{
		Summary: FormatEventSummary(events),
		Events:  events,
		TimeMin: now,
		TimeMax: timeMax,
	}, nil
}

func (u *calendarUsecase) ContextSummary(ctx context.Context, userID string) (string, error) {
	ec, err := u.EventContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return ec.Summary, nil
}

func (u *calendarUsecase) ListCalendars(ctx context.Context, userID string) ([]*calendar.CalendarListEntry, error) {
	creds, err := u.tokens.EnsureAuthenticated(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.events.ListCalendars(ctx, creds)
}

// FormatEventSummary renders events grouped by day, earliest day first, one
// line per event. All-day events are labeled instead of showing clock times.
func FormatEventSummary(events []*calendar.Event) string {
	if len(events) == 0 {
		return "The calendar has no upcoming events."
	}

	byDay := make(map[string][]string)
	for _, event := range events {
		day, line, ok := formatEventLine(event)
		if !ok {
			continue
		}
		byDay[day] = append(byDay[day], line)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var b strings.Builder
	b.WriteString("Upcoming calendar events:\n")
	for _, day := range days {
		b.WriteString(fmt.Sprintf("\n%s:\n", day))
		for _, line := range byDay[day] {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func formatEventLine(event *calendar.Event) (day, line string, ok bool) {
	if event == nil || event.Start == nil {
		return "", "", false
	}

	title := event.Summary
	if title == "" {
		title = "(untitled)"
	}

	var window string
	if event.Start.DateTime == "" {
		day = event.Start.Date
		window = "All day"
	} else {
		start, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			return "", "", false
		}
		day = start.Format("2006-01-02")
		window = start.Format("15:04")
		if event.End != nil && event.End.DateTime != "" {
			if end, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				window += " - " + end.Format("15:04")
			}
		}
	}

	line = fmt.Sprintf("- %s: %s", window, title)
	if event.Location != "" {
		line += " @ " + truncate(event.Location, snippetLimit)
	}
	if event.Description != "" {
		line += " (" + truncate(event.Description, snippetLimit) + ")"
	}
	return day, line, true
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

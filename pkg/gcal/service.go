package gcal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	authdomain "focusplan-backend/internal/auth/domain"
	taskdomain "focusplan-backend/internal/task/domain"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultCalendarID is the calendar written to unless a caller supplies one.
const DefaultCalendarID = "primary"

// Service performs calendar CRUD with user credentials. Token refresh is
// handled upstream by the auth usecase, so each call runs with a bundle that
// is already valid.
type Service struct {
	endpoint string // overridden in tests
}

// NewService creates a new calendar Service
func NewService() *Service {
	return &Service{}
}

func (s *Service) calendarService(ctx context.Context, creds *authdomain.TokenBundle) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken: creds.AccessToken,
		TokenType:   "Bearer",
	}

	opts := []option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return srv, nil
}

// UpsertEvent creates the remote event for a task, or patches the linked
// event when the task already carries one. Returns the remote event id.
func (s *Service) UpsertEvent(ctx context.Context, creds *authdomain.TokenBundle, task *taskdomain.Task, calendarID string) (string, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	payload, err := BuildEventPayload(task)
	if err != nil {
		return "", err
	}

	srv, err := s.calendarService(ctx, creds)
	if err != nil {
		return "", err
	}

	var event *calendar.Event
	if task.GoogleEventID != "" {
		event, err = srv.Events.Patch(calendarID, task.GoogleEventID, payload).Do()
	} else {
		event, err = srv.Events.Insert(calendarID, payload).Do()
	}
	if err != nil {
		return "", classifyError(err)
	}

	return event.Id, nil
}

// DeleteEvent removes a remote event. A 410 from the provider means the
// event is already gone and counts as success.
func (s *Service) DeleteEvent(ctx context.Context, creds *authdomain.TokenBundle, eventID, calendarID string) error {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	srv, err := s.calendarService(ctx, creds)
	if err != nil {
		return err
	}

	if err := srv.Events.Delete(calendarID, eventID).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusGone {
			log.Printf("[Calendar] event %s already deleted", eventID)
			return nil
		}
		return classifyError(err)
	}
	return nil
}

// ListEvents fetches events in [timeMin, timeMax], recurring events
// pre-expanded and ordered by start time.
func (s *Service) ListEvents(ctx context.Context, creds *authdomain.TokenBundle, timeMin, timeMax time.Time, maxResults int64, calendarID string) ([]*calendar.Event, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	srv, err := s.calendarService(ctx, creds)
	if err != nil {
		return nil, err
	}

	call := srv.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults)
	if !timeMax.IsZero() {
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}

	events, err := call.Do()
	if err != nil {
		return nil, classifyError(err)
	}
	return events.Items, nil
}

// ListCalendars returns the calendars the user can write to.
func (s *Service) ListCalendars(ctx context.Context, creds *authdomain.TokenBundle) ([]*calendar.CalendarListEntry, error) {
	srv, err := s.calendarService(ctx, creds)
	if err != nil {
		return nil, err
	}

	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return nil, classifyError(err)
	}
	return list.Items, nil
}

// classifyError maps provider status codes onto the package error taxonomy.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrAuthExpired, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, apiErr.Message)
	default:
		return &RequestError{Status: apiErr.Code, Body: apiErr.Message}
	}
}

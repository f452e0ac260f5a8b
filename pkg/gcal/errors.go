package gcal

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired means the provider rejected the bearer token; the
	// caller should prompt re-authentication rather than swallow it.
	ErrAuthExpired = errors.New("google authentication expired")
	// ErrPermissionDenied means the granted scopes do not cover the request.
	ErrPermissionDenied = errors.New("calendar permission denied")
	// ErrValidation means the task cannot be turned into an event payload.
	ErrValidation = errors.New("invalid task input")
)

// RequestError carries the status and body of a non-2xx calendar response
// that does not map to a more specific condition.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("calendar request failed (status %d): %s", e.Status, e.Body)
}

package gcal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "focusplan-backend/internal/auth/domain"

	"google.golang.org/api/googleapi"
)

func newTestCalendarService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewService()
	svc.endpoint = server.URL
	return svc
}

func TestDeleteEventGoneIsSuccess(t *testing.T) {
	var calls int
	svc := newTestCalendarService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusGone)
		w.Write([]byte(`{"error":{"code":410,"message":"Resource has been deleted"}}`))
	})

	creds := &authdomain.TokenBundle{AccessToken: "tok"}
	if err := svc.DeleteEvent(context.Background(), creds, "evt-1", ""); err != nil {
		t.Errorf("a 410 must resolve as already-deleted success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDeleteEventClassifiesOtherStatuses(t *testing.T) {
	svc := newTestCalendarService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	})

	creds := &authdomain.TokenBundle{AccessToken: "tok"}
	err := svc.DeleteEvent(context.Background(), creds, "evt-1", "")
	if !errors.Is(err, ErrAuthExpired) {
		t.Errorf("err = %v, want ErrAuthExpired", err)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		code int
		want error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuthExpired},
		{"forbidden", http.StatusForbidden, ErrPermissionDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyError(&googleapi.Error{Code: tc.code, Message: "nope"})
			if !errors.Is(err, tc.want) {
				t.Errorf("classifyError(%d) = %v, want %v", tc.code, err, tc.want)
			}
		})
	}
}

func TestClassifyErrorGenericStatus(t *testing.T) {
	err := classifyError(&googleapi.Error{Code: http.StatusServiceUnavailable, Message: "try later"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusServiceUnavailable || reqErr.Body != "try later" {
		t.Errorf("unexpected RequestError: %+v", reqErr)
	}
}

func TestClassifyErrorPassthrough(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	if got := classifyError(plain); got != plain {
		t.Errorf("non-API errors should pass through, got %v", got)
	}
}

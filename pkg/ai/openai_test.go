package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *OpenAIService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewOpenAIService("test-key", "")
	svc.baseURL = server.URL
	return svc
}

func TestChatParsesToolCall(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{
				"message": {
					"content": "",
					"tool_calls": [{
						"function": {
							"name": "create_task",
							"arguments": "{\"title\":\"Dinner\"}"
						}
					}]
				}
			}]
		}`))
	})

	result, err := svc.Chat(context.Background(), []Message{{Role: RoleUser, Content: "dinner"}}, []Tool{{Name: "create_task"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(result.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(result.ToolCalls))
	}
	if result.ToolCalls[0].Name != "create_task" {
		t.Errorf("tool name = %q", result.ToolCalls[0].Name)
	}
	if !strings.Contains(result.ToolCalls[0].Arguments, "Dinner") {
		t.Errorf("arguments = %q", result.ToolCalls[0].Arguments)
	}
}

func TestChatParsesPlainContent(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"Hello there"}}]}`))
	})

	result, err := svc.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if result.Content != "Hello there" {
		t.Errorf("content = %q", result.Content)
	}
}

func TestChatClassifiesProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"message":"provider says no","type":"test"}}`))
			})

			_, err := svc.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if !strings.Contains(err.Error(), "provider says no") {
				t.Errorf("provider message should be preserved, got %q", err.Error())
			}
		})
	}
}

func TestChatWithoutAPIKey(t *testing.T) {
	svc := NewOpenAIService("", "")
	_, err := svc.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil)
	if !errors.Is(err, ErrProviderAuth) {
		t.Errorf("err = %v, want ErrProviderAuth", err)
	}
}

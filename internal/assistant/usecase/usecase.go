package usecase

import (
	"context"

	taskdomain "focusplan-backend/internal/task/domain"
	taskusecase "focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/ai"
)

// Action names reported back to the client after a tool call.
const (
	ActionNone       = ""
	ActionCreateTask = "create_task"
	ActionDeleteTask = "delete_task"
	ActionSyncTask   = "sync_task"
)

// ChatResponse is the assistant's answer plus any side effect it performed.
type ChatResponse struct {
	Reply  string                  `json:"reply"`
	Action string                  `json:"action,omitempty"`
	Task   *taskdomain.Task        `json:"task,omitempty"`
	Report *taskusecase.SyncReport `json:"report,omitempty"`
}

// AssistantUsecase defines the interface for the chat assistant
type AssistantUsecase interface {
	// Chat runs one conversational turn. When the model requests a tool
	// call, the matching task operation is executed before replying.
	Chat(ctx context.Context, userID, message string, history []ai.Message) (*ChatResponse, error)
}

// ContextProvider supplies the calendar summary injected into the prompt
type ContextProvider interface {
	ContextSummary(ctx context.Context, userID string) (string, error)
}

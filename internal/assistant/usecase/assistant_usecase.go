package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	taskusecase "focusplan-backend/internal/task/usecase"
	"focusplan-backend/pkg/ai"
)

const systemPromptTemplate = `You are FocusPlan, a friendly planning assistant. You help the user manage their tasks and calendar.

Today's date is %s.

%s

Rules:
- When the user asks to create, delete or sync a task, call the matching tool instead of describing the steps.
- Dates must be YYYY-MM-DD and times must be 24-hour HH:MM.
- If the user gives a relative date such as "tomorrow", resolve it against today's date.
- Keep answers short and concrete.`

type assistantUsecase struct {
	assistant ai.AssistantService
	tasks     taskusecase.TaskUsecase
	calendar  ContextProvider
}

// NewAssistantUsecase creates a new instance of assistantUsecase
func NewAssistantUsecase(assistant ai.AssistantService, tasks taskusecase.TaskUsecase, calendar ContextProvider) AssistantUsecase {
	return &assistantUsecase{assistant: assistant, tasks: tasks, calendar: calendar}
}

func (u *assistantUsecase) Chat(ctx context.Context, userID, message string, history []ai.Message) (*ChatResponse, error) {
	messages := []ai.Message{{Role: ai.RoleSystem, Content: u.systemPrompt(ctx, userID)}}
	messages = append(messages, history...)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})

	result, err := u.assistant.Chat(ctx, messages, toolDefinitions())
	if err != nil {
		return nil, err
	}

	if len(result.ToolCalls) == 0 {
		return &ChatResponse{Reply: result.Content}, nil
	}

	// Only the first tool call is honored; the model is prompted to issue
	// one action per turn.
	response := u.dispatch(ctx, userID, result.ToolCalls[0])
	if response.Reply == "" {
		response.Reply = result.Content
	}
	return response, nil
}

// systemPrompt assembles the prompt with today's date and the calendar
// summary. A failed summary fetch degrades to a prompt without it.
func (u *assistantUsecase) systemPrompt(ctx context.Context, userID string) string {
	summary := "The user's calendar is currently unavailable."
	if u.calendar != nil {
		if s, err := u.calendar.ContextSummary(ctx, userID); err != nil {
			log.Printf("[Assistant] calendar context unavailable: %v", err)
		} else {
			summary = s
		}
	}
	return fmt.Sprintf(systemPromptTemplate, time.Now().Format("2006-01-02"), summary)
}

func toolDefinitions() []ai.Tool {
	return []ai.Tool{
		{
			Name:        "create_task",
			Description: "Create a new task on the user's schedule.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":       map[string]any{"type": "string", "description": "Short task title"},
					"description": map[string]any{"type": "string", "description": "Optional details"},
					"date":        map[string]any{"type": "string", "description": "Task date in YYYY-MM-DD"},
					"startTime":   map[string]any{"type": "string", "description": "Start time in 24-hour HH:MM"},
					"endTime":     map[string]any{"type": "string", "description": "End time in 24-hour HH:MM"},
				},
				"required": []string{"title", "date", "startTime", "endTime"},
			},
		},
		{
			Name:        "delete_task",
			Description: "Delete an existing task. Identify it by words from its title.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"taskIdentifier": map[string]any{"type": "string", "description": "Words from the task title or notes"},
				},
				"required": []string{"taskIdentifier"},
			},
		},
		{
			Name:        "sync_task",
			Description: "Push a task to Google Calendar, or all pending tasks at once.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"taskIdentifier": map[string]any{"type": "string", "description": "Words from the task title; ignored when syncAll is true"},
					"syncAll":        map[string]any{"type": "boolean", "description": "Sync every pending task"},
				},
			},
		},
	}
}

package ai

import (
	"context"
	"errors"
)

var (
	// ErrBadRequest means the provider rejected the request as malformed;
	// the provider's own message is preserved for the caller.
	ErrBadRequest = errors.New("assistant request rejected")
	// ErrProviderAuth means the configured API key was refused.
	ErrProviderAuth = errors.New("assistant provider authentication failed")
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("assistant provider rate limited")
)

// Role values for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool describes one function the model may call.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall is a function invocation requested by the model. Arguments is the
// raw JSON string exactly as the provider returned it.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatResult is the model's answer: free text, a tool call, or both.
type ChatResult struct {
	Content   string
	ToolCalls []ToolCall
}

// AssistantService defines the interface for chat-model providers
type AssistantService interface {
	// Chat sends the conversation and tool definitions to the model and
	// returns its reply.
	Chat(ctx context.Context, messages []Message, tools []Tool) (*ChatResult, error)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	openaiEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"

	chatTemperature = 0.7
	chatMaxTokens   = 1500
)

// OpenAIService implements AssistantService using the Chat Completions API.
type OpenAIService struct {
	apiKey  string
	model   string
	baseURL string // overridden in tests
	client  *http.Client
}

// NewOpenAIService creates a new OpenAI-backed assistant service
func NewOpenAIService(apiKey, model string) *OpenAIService {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type openaiFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type openaiTool struct {
	Type     string         `json:"type"`
	Function openaiFunction `json:"function"`
}

type openaiRequest struct {
	Model       string       `json:"model"`
	Messages    []Message    `json:"messages"`
	Tools       []openaiTool `json:"tools,omitempty"`
	ToolChoice  string       `json:"tool_choice,omitempty"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type openaiToolCall struct {
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content   string           `json:"content"`
			ToolCalls []openaiToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Chat sends the conversation to OpenAI with function calling enabled.
func (s *OpenAIService) Chat(ctx context.Context, messages []Message, tools []Tool) (*ChatResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrProviderAuth)
	}

	reqBody := openaiRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}
	for _, tool := range tools {
		reqBody.Tools = append(reqBody.Tools, openaiTool{
			Type: "function",
			Function: openaiFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	if len(reqBody.Tools) > 0 {
		reqBody.ToolChoice = "auto"
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %v", err)
	}

	var parsed openaiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.classifyError(resp.StatusCode, &parsed, body)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat response contained no choices")
	}

	msg := parsed.Choices[0].Message
	result := &ChatResult{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return result, nil
}

func (s *OpenAIService) endpoint() string {
	if s.baseURL != "" {
		return s.baseURL + "/chat/completions"
	}
	return openaiEndpoint
}

func (s *OpenAIService) classifyError(status int, parsed *openaiResponse, body []byte) error {
	message := string(body)
	if parsed.Error != nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}
	log.Printf("[OpenAI] request failed (status %d): %s", status, message)

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrProviderAuth, message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	default:
		return fmt.Errorf("chat provider error (status %d): %s", status, message)
	}
}

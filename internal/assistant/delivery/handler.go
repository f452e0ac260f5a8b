package delivery

import (
	"errors"
	"net/http"

	"focusplan-backend/internal/assistant/usecase"
	"focusplan-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles HTTP requests for the chat assistant
type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{assistantUsecase: assistantUsecase}
}

// ChatRequest is the JSON body for a chat turn
type ChatRequest struct {
	Message string       `json:"message" binding:"required"`
	History []ai.Message `json:"history"`
}

// Chat runs one assistant turn
// POST /api/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	userID := c.GetString("userID")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.assistantUsecase.Chat(c.Request.Context(), userID, req.Message, req.History)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrBadRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ai.ErrProviderAuth):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant provider rejected the configured credentials"})
		case errors.Is(err, ai.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Assistant is busy, try again shortly"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

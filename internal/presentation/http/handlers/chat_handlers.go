package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
)

// ChatRequest is one user chat turn. An empty session id starts a new
// session; the reply carries the id to keep.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message" binding:"required"`
}

// ChatHandlers serves the chatbot endpoint.
type ChatHandlers struct {
	chatService *services.ChatService
	logger      *logging.ChanneledLogger
}

// NewChatHandlers creates chat endpoint handlers.
func NewChatHandlers(chatService *services.ChatService, logger *logging.ChanneledLogger) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
		logger:      logger,
	}
}

// PostMessage handles POST /api/chat.
func (h *ChatHandlers) PostMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	c.JSON(http.StatusOK, h.chatService.HandleMessage(c.Request.Context(), req.SessionID, req.Message))
}

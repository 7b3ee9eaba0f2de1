package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/services"
)

const (
	invalidRequestMessage  = "Invalid request. 'messages' array is required."
	internalErrorMessage   = "Failed to process the request"
	completionErrorMessage = "I apologize, but I encountered an error while processing your request. " +
		"Please check your OpenAI API key or try again later."
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	completer services.Completer
	logger    *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(completer services.Completer, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		completer: completer,
		logger:    logger,
	}
}

// Chat answers POST /api/chat with the next assistant reply.
// A failed completion is not an HTTP error: the caller gets a 200 with an
// apology so the widget can show it as a normal bubble.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestMessage})
		return
	}

	reply, err := h.completer.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		h.logger.Error("error generating AI response", "error", err, "messages", len(req.Messages))
		reply = completionErrorMessage
	}

	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}

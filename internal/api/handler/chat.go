package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatService answers a user question about the pipeline.
type ChatService interface {
	Ask(ctx context.Context, userMessage string) (string, error)
}

// ChatMessage is the chat request body.
type ChatMessage struct {
	Message string `json:"message" binding:"required"`
}

// ChatHandler handles the assistant endpoint.
type ChatHandler struct {
	chat ChatService
}

// NewChatHandler creates a new chat handler.
// Parameters:
//   - chat: chat service instance.
// Returns:
//   - *ChatHandler: initialized handler.
func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/chat. Model failures are reported in the response
// body with a 200 status so the UI can render them inline.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ChatHandler) Chat(c *gin.Context) {
	var msg ChatMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	response, err := h.chat.Ask(c.Request.Context(), msg.Message)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "error",
			"response": "Sorry, I encountered an error: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"response": response,
	})
}

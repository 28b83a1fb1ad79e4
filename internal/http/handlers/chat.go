package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careercompass-backend/internal/http/response"
	"github.com/yungbote/careercompass-backend/internal/modules/chat"
)

type ChatAnswerer interface {
	Answer(ctx context.Context, query string, history []chat.Message) (string, error)
}

type ChatHandler struct {
	chat ChatAnswerer
}

func NewChatHandler(c ChatAnswerer) *ChatHandler {
	return &ChatHandler{chat: c}
}

type chatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversation_history"`
}

// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	answer, err := h.chat.Answer(c.Request.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		response.RespondAPIError(c, mapError(err), "internal_error")
		return
	}
	response.RespondOK(c, gin.H{"response": answer})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flightai/internal/assistant"
)

type ChatHandler struct {
	assistant assistant.ChatUseCase
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func NewChatHandler(a assistant.ChatUseCase) *ChatHandler {
	return &ChatHandler{assistant: a}
}

func (h *ChatHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.chat)
}

func (h *ChatHandler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, sessionID, err := h.assistant.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{SessionID: sessionID, Reply: reply})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"health-dashboard-be/internal/middleware"
	"health-dashboard-be/internal/models"
	"health-dashboard-be/internal/service"
)

type ChatController struct {
	chatService service.ChatService
	logger      zerolog.Logger
}

func NewChatController(chatService service.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat handles POST /api/chat. Anonymous callers are allowed.
func (cc *ChatController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := cc.chatService.Chat(c.Request.Context(), middleware.UserID(c), req.Query)
	if err != nil {
		internalError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// History handles GET /api/chat/history
func (cc *ChatController) History(c *gin.Context) {
	limit, err := queryInt(c, "limit", service.DefaultHistoryLimit)
	if err != nil {
		badRequest(c, err)
		return
	}

	history, err := cc.chatService.History(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		internalError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.ChatHistoryResponse{
		Success: true,
		Count:   len(history),
		History: history,
	})
}

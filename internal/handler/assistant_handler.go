package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketpos/internal/middleware"
	"marketpos/internal/service"
	"marketpos/pkg/response"
)

type AssistantHandler struct {
	assistantService service.AssistantService
}

func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/assistant/chat", middleware.RequireAuth(), h.Chat)
}

// Chat asks the store assistant a question grounded in today's figures
// @Summary      Assistant chat
// @Description  Answers questions using the day's sales summary and the current low-stock report as context
// @Tags         assistant
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ChatRequest  true  "Question"
// @Success      200      {object}  response.Response{data=service.ChatResponse}
// @Failure      503      {object}  response.Response
// @Router       /api/assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	reply, err := h.assistantService.Chat(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrAssistantNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, err.Error()))
			return
		}
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reply))
}

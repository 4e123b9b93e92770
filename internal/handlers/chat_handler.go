package handlers

import (
	"net/http"

	"collabhub_backend/internal/middleware"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/conversations")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("", h.StartConversation)
		chat.GET("", h.ListConversations)
		chat.POST("/:id/messages", h.SendMessage)
		chat.GET("/:id/messages", h.ListMessages)
		chat.POST("/:id/read", h.MarkConversationRead)
	}
}

func (h *ChatHandler) StartConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.StartConversationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.chatService.StartConversation(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.chatService.ListConversations(c.Request.Context(), userID, p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var p dto.Pagination
	if !h.BindAndValidate_Query(c, &p) {
		return
	}

	resp, err := h.chatService.ListMessages(c.Request.Context(), userID, c.Param("id"), p)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) MarkConversationRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkConversationRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation marked as read"})
}

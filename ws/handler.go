package ws

import (
	"net/http"
	"strings"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // продакшн: проверка origin
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type Handler struct {
	Manager     *Manager
	ChatService services.ChatService
}

func NewHandler(manager *Manager, chatService services.ChatService) *Handler {
	return &Handler{
		Manager:     manager,
		ChatService: chatService,
	}
}

// ServeWS апгрейдит соединение. Токен принимается из query-параметра
// (браузерный WebSocket не умеет ставить заголовки) либо из Authorization.
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:      claims.UserID,
		Conn:        conn,
		Send:        make(chan Event, 256),
		Ctx:         c.Request.Context(),
		Manager:     h.Manager,
		ChatService: h.ChatService,
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}

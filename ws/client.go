package ws

import (
	"context"
	"encoding/json"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/services"
	"collabhub_backend/internal/services/dto"

	"github.com/gorilla/websocket"
)

// IncomingMessage - сообщение от клиента
type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan Event
	Ctx    context.Context

	Manager     *Manager
	ChatService services.ChatService
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "user_id", c.UserID, "error", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Warn("ws message parse failed", "user_id", c.UserID, "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for event := range c.Send {
		if err := c.Conn.WriteJSON(event); err != nil {
			logger.Warn("ws write error", "user_id", c.UserID, "error", err)
			break
		}
	}
}

// Централизованный обработчик входящих действий
func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {

	case "send_message":
		var payload struct {
			ConversationID string `json:"conversation_id"`
			Content        string `json:"content"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Warn("invalid send_message payload", "user_id", c.UserID, "error", err)
			return
		}
		created, err := c.ChatService.SendMessage(c.Ctx, c.UserID, payload.ConversationID, &dto.SendMessageRequest{
			Content: payload.Content,
		})
		if err != nil {
			logger.Warn("ws send_message failed", "user_id", c.UserID, "error", err)
			return
		}
		c.Send <- Event{Event: services.EventNewMessage, Payload: created}

	case "mark_read":
		var payload struct {
			ConversationID string `json:"conversation_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Warn("invalid mark_read payload", "user_id", c.UserID, "error", err)
			return
		}
		if err := c.ChatService.MarkConversationRead(c.Ctx, c.UserID, payload.ConversationID); err != nil {
			logger.Warn("ws mark_read failed", "user_id", c.UserID, "error", err)
		}

	default:
		logger.Debug("unhandled ws action", "user_id", c.UserID, "action", msg.Action)
	}
}

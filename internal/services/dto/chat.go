package dto

import "time"

// StartConversationRequest - открытие диалога с пользователем
type StartConversationRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
}

// SendMessageRequest - отправка сообщения
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ConversationResponse - диалог в ответе
type ConversationResponse struct {
	ID            string     `json:"id"`
	ParticipantID string     `json:"participant_id"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int64      `json:"unread_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ConversationListResponse - страница диалогов
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	Meta          ListMeta               `json:"meta"`
}

// MessageResponse - сообщение в ответе
type MessageResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Content        string     `json:"content"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MessageListResponse - страница сообщений
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Meta     ListMeta          `json:"meta"`
}

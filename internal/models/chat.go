package models

import "time"

// Conversation - диалог между двумя пользователями.
// Пара (user1_id, user2_id) хранится упорядоченной лексикографически,
// чтобы один и тот же диалог нельзя было создать дважды.
type Conversation struct {
	BaseModel
	User1ID string `gorm:"uniqueIndex:idx_conversation_pair;not null"`
	User2ID string `gorm:"uniqueIndex:idx_conversation_pair;not null"`

	LastMessageAt *time.Time `gorm:"index"`

	User1    *User     `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2    *User     `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// OrderPair возвращает пару ID в каноническом порядке.
func OrderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant проверяет членство пользователя в диалоге.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant возвращает собеседника для данного участника.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Message - сообщение в диалоге
type Message struct {
	BaseModel
	ConversationID string `gorm:"index;not null"`
	SenderID       string `gorm:"index;not null"`

	Content string `gorm:"type:text;not null"`
	IsRead  bool   `gorm:"default:false"`
	ReadAt  *time.Time

	Conversation *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	Sender       *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

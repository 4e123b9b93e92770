package repositories

import (
	"context"
	"errors"
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

type ChatRepository interface {
	// FindOrCreateConversation находит диалог пары пользователей
	// или создает новый. Пара нормализуется до канонического порядка.
	FindOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error)
	FindConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string, limit, offset int) ([]models.Conversation, int64, error)
	TouchConversation(ctx context.Context, conversationID string, at time.Time) error

	CreateMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) FindOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	db := dbFrom(ctx, r.db)
	u1, u2 := models.OrderPair(userA, userB)

	var conv models.Conversation
	err := db.Where("user1_id = ? AND user2_id = ?", u1, u2).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{User1ID: u1, User2ID: u2}
	if err := db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepositoryImpl) FindConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := dbFrom(ctx, r.db).Preload("User1").Preload("User2").
		First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepositoryImpl) ListConversations(ctx context.Context, userID string, limit, offset int) ([]models.Conversation, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.Conversation{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conversations []models.Conversation
	err := db.Preload("User1").Preload("User2").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("COALESCE(last_message_at, conversations.created_at) DESC").
		Limit(limit).Offset(offset).
		Find(&conversations).Error
	return conversations, total, err
}

func (r *ChatRepositoryImpl) TouchConversation(ctx context.Context, conversationID string, at time.Time) error {
	return dbFrom(ctx, r.db).Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Updates(map[string]interface{}{
			"last_message_at": at,
			"updated_at":      at,
		}).Error
}

func (r *ChatRepositoryImpl) CreateMessage(ctx context.Context, m *models.Message) error {
	return dbFrom(ctx, r.db).Create(m).Error
}

func (r *ChatRepositoryImpl) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, total, err
}

// MarkMessagesRead помечает прочитанными все чужие сообщения диалога.
func (r *ChatRepositoryImpl) MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	now := time.Now()
	result := dbFrom(ctx, r.db).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_at":    now,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *ChatRepositoryImpl) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.user1_id = ? OR conversations.user2_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

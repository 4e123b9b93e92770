package services

import (
	"context"
	"time"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"
)

type ChatService interface {
	StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*dto.ConversationResponse, error)
	ListConversations(ctx context.Context, userID string, p dto.Pagination) (*dto.ConversationListResponse, error)
	SendMessage(ctx context.Context, senderID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, userID, conversationID string, p dto.Pagination) (*dto.MessageListResponse, error)
	MarkConversationRead(ctx context.Context, userID, conversationID string) error
}

type ChatServiceImpl struct {
	chatRepo      repositories.ChatRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	publisher     Publisher
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	publisher Publisher,
) ChatService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &ChatServiceImpl{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		publisher:     publisher,
	}
}

// StartConversation - открытие (или поиск существующего) диалога
func (s *ChatServiceImpl) StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	if req.RecipientID == userID {
		return nil, apperrors.NewBadRequestError("chat", "cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.FindByID(ctx, req.RecipientID); err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	conv, err := s.chatRepo.FindOrCreateConversation(ctx, userID, req.RecipientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toConversationResponse(conv, userID, 0), nil
}

func (s *ChatServiceImpl) ListConversations(ctx context.Context, userID string, p dto.Pagination) (*dto.ConversationListResponse, error) {
	conversations, total, err := s.chatRepo.ListConversations(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		items = append(items, *s.toConversationResponse(&conversations[i], userID, 0))
	}
	return &dto.ConversationListResponse{
		Conversations: items,
		Meta:          dto.NewListMeta(total, p),
	}, nil
}

// SendMessage - отправка сообщения с realtime-доставкой получателю
func (s *ChatServiceImpl) SendMessage(ctx context.Context, senderID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	conv, err := s.findMemberConversation(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        req.Content,
	}

	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.chatRepo.TouchConversation(ctx, conversationID, time.Now()); err != nil {
		logger.CtxWarn(ctx, "conversation touch failed", "conversation_id", conversationID, "error", err)
	}

	recipientID := conv.OtherParticipant(senderID)
	response := s.toMessageResponse(message)

	if err := s.publisher.Publish(recipientID, EventNewMessage, response); err != nil {
		logger.CtxWarn(ctx, "realtime message delivery failed", "conversation_id", conversationID, "error", err)
	}
	if err := s.publisher.Publish(recipientID, EventConversationUpdate, map[string]string{
		"conversation_id": conversationID,
	}); err != nil {
		logger.CtxWarn(ctx, "conversation update delivery failed", "conversation_id", conversationID, "error", err)
	}

	senderName := senderID
	if sender, err := s.userRepo.FindByID(ctx, senderID); err == nil {
		if sender.CreatorProfile != nil && sender.CreatorProfile.DisplayName != "" {
			senderName = sender.CreatorProfile.DisplayName
		} else if sender.BrandProfile != nil && sender.BrandProfile.CompanyName != "" {
			senderName = sender.BrandProfile.CompanyName
		} else {
			senderName = sender.Email
		}
	}
	if err := s.notifications.NotifyNewMessage(ctx, recipientID, senderName, conversationID); err != nil {
		logger.CtxWarn(ctx, "message notification failed", "conversation_id", conversationID, "error", err)
	}

	return response, nil
}

func (s *ChatServiceImpl) ListMessages(ctx context.Context, userID, conversationID string, p dto.Pagination) (*dto.MessageListResponse, error) {
	if _, err := s.findMemberConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.ListMessages(ctx, conversationID, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, *s.toMessageResponse(&messages[i]))
	}
	return &dto.MessageListResponse{Messages: items, Meta: dto.NewListMeta(total, p)}, nil
}

func (s *ChatServiceImpl) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	if _, err := s.findMemberConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if _, err := s.chatRepo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ChatServiceImpl) findMemberConversation(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.chatRepo.FindConversationByID(ctx, conversationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.NewForbiddenError("chat", "not a conversation participant")
	}
	return conv, nil
}

func (s *ChatServiceImpl) toConversationResponse(c *models.Conversation, viewerID string, unread int64) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		ID:            c.ID,
		ParticipantID: c.OtherParticipant(viewerID),
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   unread,
		CreatedAt:     c.CreatedAt,
	}
}

func (s *ChatServiceImpl) toMessageResponse(m *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/metrics"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type NotificationService interface {
	// Notify сохраняет уведомление и рассылает его realtime-каналом.
	// Ошибка доставки не валит вызывающую операцию.
	Notify(ctx context.Context, userID string, typ models.NotificationType, title, body string, payload interface{}) error

	GetUserNotifications(ctx context.Context, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	DeleteNotification(ctx context.Context, userID, notificationID string) error
	CleanOldNotifications(ctx context.Context, olderThan time.Duration) (int64, error)

	// Фабричные методы типовых уведомлений
	NotifyNewMessage(ctx context.Context, recipientID, senderName, conversationID string) error
	NotifyNewOffer(ctx context.Context, recipientID, senderName, offerID string) error
	NotifyOfferUpdated(ctx context.Context, recipientID, offerID string, status models.OfferStatus) error
	NotifyApplicationStatus(ctx context.Context, creatorID, promotionTitle string, status models.ApplicationStatus) error
	NotifyNewApplication(ctx context.Context, brandID, promotionTitle, applicationID string) error
	NotifyOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) error
	NotifyPaymentReceived(ctx context.Context, creatorID, orderID string, amount float64) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        Publisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher Publisher,
) NotificationService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID string, typ models.NotificationType, title, body string, payload interface{}) error {
	var payloadJSON datatypes.JSON
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal notification payload: %w", err)
		}
		payloadJSON = datatypes.JSON(raw)
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Body:    body,
		Payload: payloadJSON,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return apperrors.InternalError(err)
	}
	metrics.Registry(metrics.DefaultNamespace).Notifications.WithLabelValues(string(typ)).Inc()

	if err := s.publisher.Publish(userID, EventNewNotification, s.toResponse(n)); err != nil {
		logger.CtxWarn(ctx, "realtime notification delivery failed",
			"user_id", userID, "type", string(typ), "error", err)
	}
	return nil
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, criteria.OnlyUnread, criteria.Limit(), criteria.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, *s.toResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
		Meta:          dto.NewListMeta(total, criteria.Pagination),
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notification", "notification not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	if _, err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	if err := s.notificationRepo.Delete(ctx, notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notification", "notification not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) CleanOldNotifications(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.notificationRepo.DeleteReadBefore(ctx, time.Now().Add(-olderThan))
}

// ---------------- Factory methods ----------------

func (s *notificationService) NotifyNewMessage(ctx context.Context, recipientID, senderName, conversationID string) error {
	return s.Notify(ctx, recipientID, models.NotificationTypeMessage,
		"Новое сообщение",
		fmt.Sprintf("%s отправил вам сообщение", senderName),
		map[string]string{"conversation_id": conversationID},
	)
}

func (s *notificationService) NotifyNewOffer(ctx context.Context, recipientID, senderName, offerID string) error {
	return s.Notify(ctx, recipientID, models.NotificationTypeOffer,
		"Новое предложение",
		fmt.Sprintf("%s предложил вам сотрудничество", senderName),
		map[string]string{"offer_id": offerID},
	)
}

func (s *notificationService) NotifyOfferUpdated(ctx context.Context, recipientID, offerID string, status models.OfferStatus) error {
	return s.Notify(ctx, recipientID, models.NotificationTypeOffer,
		"Предложение обновлено",
		fmt.Sprintf("Статус предложения изменился: %s", status),
		map[string]string{"offer_id": offerID, "status": string(status)},
	)
}

func (s *notificationService) NotifyApplicationStatus(ctx context.Context, creatorID, promotionTitle string, status models.ApplicationStatus) error {
	return s.Notify(ctx, creatorID, models.NotificationTypeApplication,
		"Отклик рассмотрен",
		fmt.Sprintf("Ваш отклик на кампанию «%s»: %s", promotionTitle, status),
		map[string]string{"status": string(status)},
	)
}

func (s *notificationService) NotifyNewApplication(ctx context.Context, brandID, promotionTitle, applicationID string) error {
	return s.Notify(ctx, brandID, models.NotificationTypeApplication,
		"Новый отклик",
		fmt.Sprintf("Новый отклик на кампанию «%s»", promotionTitle),
		map[string]string{"application_id": applicationID},
	)
}

func (s *notificationService) NotifyOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) error {
	return s.Notify(ctx, userID, models.NotificationTypeOrder,
		"Заказ обновлен",
		fmt.Sprintf("Статус заказа изменился: %s", status),
		map[string]string{"order_id": orderID, "status": string(status)},
	)
}

func (s *notificationService) NotifyPaymentReceived(ctx context.Context, creatorID, orderID string, amount float64) error {
	return s.Notify(ctx, creatorID, models.NotificationTypePayment,
		"Оплата получена",
		fmt.Sprintf("Вам начислено %.2f за выполненный заказ", amount),
		map[string]interface{}{"order_id": orderID, "amount": amount},
	)
}

func (s *notificationService) toResponse(n *models.Notification) *dto.NotificationResponse {
	var payload interface{}
	if len(n.Payload) > 0 {
		_ = json.Unmarshal(n.Payload, &payload)
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Payload:   payload,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// NotificationCriteria - фильтр списка уведомлений
type NotificationCriteria struct {
	Pagination
	OnlyUnread bool `form:"only_unread"`
}

// NotificationResponse - уведомление в ответе
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body,omitempty"`
	Payload   interface{}             `json:"payload,omitempty"`
	IsRead    bool                    `json:"is_read"`
	ReadAt    *time.Time              `json:"read_at,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// NotificationListResponse - страница уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
	Meta          ListMeta               `json:"meta"`
}

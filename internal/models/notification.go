package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType - тип события для клиента
type NotificationType string

const (
	NotificationTypeMessage     NotificationType = "message"
	NotificationTypeOffer       NotificationType = "offer"
	NotificationTypeApplication NotificationType = "application"
	NotificationTypeOrder       NotificationType = "order"
	NotificationTypePayment     NotificationType = "payment"
	NotificationTypeSystem      NotificationType = "system"
)

// Notification - уведомление пользователя.
// Сохраняется в БД и параллельно рассылается через realtime-публикатор.
type Notification struct {
	BaseModel
	UserID string `gorm:"index;not null"`

	Type    NotificationType `gorm:"type:varchar(30);not null"`
	Title   string           `gorm:"not null"`
	Body    string           `gorm:"type:text"`
	Payload datatypes.JSON   `gorm:"type:jsonb"`

	IsRead bool `gorm:"default:false;index"`
	ReadAt *time.Time
}

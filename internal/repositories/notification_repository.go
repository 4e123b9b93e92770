package repositories

import (
	"context"
	"errors"
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	// DeleteReadBefore удаляет прочитанные уведомления старше порога.
	// Вызывается фоновым воркером.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *models.Notification) error {
	return dbFrom(ctx, r.db).Create(n).Error
}

func (r *NotificationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	err := dbFrom(ctx, r.db).First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]models.Notification, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.Notification{}).Where("user_id = ?", userID)
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id, userID string) error {
	now := time.Now()
	result := dbFrom(ctx, r.db).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	now := time.Now()
	result := dbFrom(ctx, r.db).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_at":    now,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id, userID string) error {
	result := dbFrom(ctx, r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := dbFrom(ctx, r.db).
		Where("is_read = ? AND read_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

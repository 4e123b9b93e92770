package services

import (
	"context"
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_ReadAndDeleteFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, models.UserRoleCreator)

	require.NoError(t, env.services.NotificationService.Notify(ctx, user.ID,
		models.NotificationTypeSystem, "Первое", "тело", nil))
	require.NoError(t, env.services.NotificationService.Notify(ctx, user.ID,
		models.NotificationTypeSystem, "Второе", "тело", map[string]string{"key": "value"}))

	unread, err := env.services.NotificationService.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	list, err := env.services.NotificationService.GetUserNotifications(ctx, user.ID, dto.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)

	first := list.Notifications[0]
	require.NoError(t, env.services.NotificationService.MarkAsRead(ctx, user.ID, first.ID))

	unread, err = env.services.NotificationService.GetUnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, env.services.NotificationService.DeleteNotification(ctx, user.ID, first.ID))
	list, err = env.services.NotificationService.GetUserNotifications(ctx, user.ID, dto.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)

	// Чужое уведомление удалить нельзя
	stranger := env.seedUser(t, models.UserRoleBrand)
	err = env.services.NotificationService.DeleteNotification(ctx, stranger.ID, list.Notifications[0].ID)
	require.Error(t, err)
}

func TestCleanOldNotifications_OnlyOldRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, models.UserRoleCreator)

	require.NoError(t, env.services.NotificationService.Notify(ctx, user.ID,
		models.NotificationTypeSystem, "Старое", "тело", nil))
	require.NoError(t, env.services.NotificationService.Notify(ctx, user.ID,
		models.NotificationTypeSystem, "Свежее непрочитанное", "тело", nil))

	list, err := env.services.NotificationService.GetUserNotifications(ctx, user.ID, dto.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)

	// Старое уведомление прочитано давно
	var old dto.NotificationResponse
	for _, n := range list.Notifications {
		if n.Title == "Старое" {
			old = n
		}
	}
	require.NotEmpty(t, old.ID)
	require.NoError(t, env.services.NotificationService.MarkAsRead(ctx, user.ID, old.ID))
	longAgo := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, env.db.Model(&models.Notification{}).Where("id = ?", old.ID).
		Update("read_at", longAgo).Error)

	removed, err := env.services.NotificationService.CleanOldNotifications(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	list, err = env.services.NotificationService.GetUserNotifications(ctx, user.ID, dto.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Свежее непрочитанное", list.Notifications[0].Title)
}

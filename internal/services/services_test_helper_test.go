package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"collabhub_backend/internal/config"
	"collabhub_backend/internal/email"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv собирает полный стек сервисов поверх in-memory базы.
type testEnv struct {
	db       *gorm.DB
	repos    *repositories.Container
	services *ServiceContainer
	email    *email.MockProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.CreatorProfile{},
		&models.BrandProfile{},
		&models.CreatorVerification{},
		&models.BrandVerification{},
		&models.Promotion{},
		&models.PromotionApplication{},
		&models.Order{},
		&models.WorkSubmission{},
		&models.Payment{},
		&models.Conversation{},
		&models.Message{},
		&models.Offer{},
		&models.Notification{},
	))

	mockEmail := email.NewMockProvider()
	repos := repositories.NewContainer(db)
	svc := NewServiceContainer(repos, mockEmail, nil)

	return &testEnv{db: db, repos: repos, services: svc, email: mockEmail}
}

func (e *testEnv) seedUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("%s-%d@test.local", role, time.Now().UnixNano()),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, e.db.Create(user).Error)

	switch role {
	case models.UserRoleCreator:
		require.NoError(t, e.db.Create(&models.CreatorProfile{
			UserID:      user.ID,
			DisplayName: "Creator " + user.ID[:8],
			Followers:   10000,
			IsPublic:    true,
		}).Error)
	case models.UserRoleBrand:
		require.NoError(t, e.db.Create(&models.BrandProfile{
			UserID:      user.ID,
			CompanyName: "Brand " + user.ID[:8],
		}).Error)
	}
	return user
}

func (e *testEnv) seedOrder(t *testing.T, brandID, creatorID string, amount float64) *models.Order {
	t.Helper()

	order := &models.Order{
		BrandID:   brandID,
		CreatorID: creatorID,
		Title:     "Test order",
		Amount:    amount,
	}
	require.NoError(t, order.AppendStatus(models.OrderStatusPending, brandID, "order created"))
	require.NoError(t, e.repos.Order.Create(context.Background(), order))
	return order
}

func (e *testEnv) countPayments(t *testing.T, orderID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Payment{}).Where("order_id = ?", orderID).Count(&n).Error)
	return n
}

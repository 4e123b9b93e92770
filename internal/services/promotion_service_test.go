package services

import (
	"context"
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotion_DraftAndPublish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)

	draft, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:  "Autumn lookbook",
		Budget: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusDraft, draft.Status)

	// Черновик не виден в каталоге
	catalog, err := env.services.PromotionService.SearchPromotions(ctx, dto.PromotionSearchCriteria{})
	require.NoError(t, err)
	assert.Empty(t, catalog.Promotions)

	published, err := env.services.PromotionService.PublishPromotion(ctx, brand.ID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusActive, published.Status)

	catalog, err = env.services.PromotionService.SearchPromotions(ctx, dto.PromotionSearchCriteria{})
	require.NoError(t, err)
	require.Len(t, catalog.Promotions, 1)

	// Повторная публикация невозможна
	_, err = env.services.PromotionService.PublishPromotion(ctx, brand.ID, draft.ID)
	require.Error(t, err)
}

func TestPromotion_OwnershipAndPastDeadline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	otherBrand := env.seedUser(t, models.UserRoleBrand)

	past := time.Now().Add(-time.Hour)
	_, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:    "Expired from the start",
		Budget:   100,
		Deadline: &past,
	})
	require.Error(t, err)

	promo, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:   "Owned campaign",
		Budget:  100,
		Publish: true,
	})
	require.NoError(t, err)

	_, err = env.services.PromotionService.ClosePromotion(ctx, otherBrand.ID, promo.ID)
	require.Error(t, err)

	closed, err := env.services.PromotionService.ClosePromotion(ctx, brand.ID, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusClosed, closed.Status)

	// Закрытую кампанию нельзя править
	newTitle := "Renamed"
	_, err = env.services.PromotionService.UpdatePromotion(ctx, brand.ID, promo.ID, &dto.UpdatePromotionRequest{Title: &newTitle})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrPromotionClosed))
}

func TestApply_DuplicateAndClosed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	promo, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:   "Open campaign",
		Budget:  1000,
		Publish: true,
	})
	require.NoError(t, err)

	_, err = env.services.PromotionService.Apply(ctx, creator.ID, promo.ID, &dto.ApplyRequest{CoverLetter: "pick me"})
	require.NoError(t, err)

	// Повторный отклик того же креатора отклоняется
	_, err = env.services.PromotionService.Apply(ctx, creator.ID, promo.ID, &dto.ApplyRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyApplied))

	_, err = env.services.PromotionService.ClosePromotion(ctx, brand.ID, promo.ID)
	require.NoError(t, err)

	other := env.seedUser(t, models.UserRoleCreator)
	_, err = env.services.PromotionService.Apply(ctx, other.ID, promo.ID, &dto.ApplyRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrPromotionClosed))
}

func TestApply_FollowerRequirement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator) // 10000 подписчиков

	promo, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:        "Big accounts only",
		Budget:       10000,
		MinFollowers: 50000,
		Publish:      true,
	})
	require.NoError(t, err)

	_, err = env.services.PromotionService.Apply(ctx, creator.ID, promo.ID, &dto.ApplyRequest{})
	require.Error(t, err)

	require.NoError(t, env.db.Model(&models.CreatorProfile{}).
		Where("user_id = ?", creator.ID).
		Update("followers", 60000).Error)

	_, err = env.services.PromotionService.Apply(ctx, creator.ID, promo.ID, &dto.ApplyRequest{})
	require.NoError(t, err)
}

func TestDecideApplication_Transitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	otherBrand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	promo, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:   "Campaign",
		Budget:  500,
		Publish: true,
	})
	require.NoError(t, err)

	application, err := env.services.PromotionService.Apply(ctx, creator.ID, promo.ID, &dto.ApplyRequest{})
	require.NoError(t, err)

	// Чужой бренд не решает
	_, err = env.services.PromotionService.DecideApplication(ctx, otherBrand.ID, application.ID, true)
	require.Error(t, err)

	decided, err := env.services.PromotionService.DecideApplication(ctx, brand.ID, application.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, decided.Status)

	// Решение окончательное
	_, err = env.services.PromotionService.DecideApplication(ctx, brand.ID, application.ID, false)
	require.Error(t, err)

	// Принятый отклик нельзя отозвать
	err = env.services.PromotionService.WithdrawApplication(ctx, creator.ID, application.ID)
	require.Error(t, err)
}

func TestCloseExpiredPromotions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := &models.Promotion{
		BrandID:  brand.ID,
		Title:    "Expired campaign",
		Budget:   100,
		Status:   models.PromotionStatusActive,
		Deadline: &past,
	}
	require.NoError(t, env.repos.Promotion.Create(ctx, expired))

	alive := &models.Promotion{
		BrandID:  brand.ID,
		Title:    "Alive campaign",
		Budget:   100,
		Status:   models.PromotionStatusActive,
		Deadline: &future,
	}
	require.NoError(t, env.repos.Promotion.Create(ctx, alive))

	closed, err := env.services.PromotionService.CloseExpiredPromotions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	got, err := env.repos.Promotion.FindByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusClosed, got.Status)
	assert.NotNil(t, got.ClosedAt)

	still, err := env.repos.Promotion.FindByID(ctx, alive.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusActive, still.Status)

	// Бренд получает системное уведомление о закрытии
	count, err := env.repos.Notification.CountUnread(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Повторный запуск ничего не находит
	closed, err = env.services.PromotionService.CloseExpiredPromotions(ctx)
	require.NoError(t, err)
	assert.Zero(t, closed)
}

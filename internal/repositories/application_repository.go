package repositories

import (
	"context"
	"errors"
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("creator already applied to this promotion")
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.PromotionApplication) error
	FindByID(ctx context.Context, id string) (*models.PromotionApplication, error)
	FindByPromotionAndCreator(ctx context.Context, promotionID, creatorID string) (*models.PromotionApplication, error)
	ListByPromotion(ctx context.Context, promotionID string, limit, offset int) ([]models.PromotionApplication, int64, error)
	ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]models.PromotionApplication, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, a *models.PromotionApplication) error {
	db := dbFrom(ctx, r.db)
	var existing models.PromotionApplication
	err := db.Where("promotion_id = ? AND creator_id = ?", a.PromotionID, a.CreatorID).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyApplied
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(a).Error
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.PromotionApplication, error) {
	var a models.PromotionApplication
	err := dbFrom(ctx, r.db).Preload("Promotion").Preload("Creator").
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepositoryImpl) FindByPromotionAndCreator(ctx context.Context, promotionID, creatorID string) (*models.PromotionApplication, error) {
	var a models.PromotionApplication
	err := dbFrom(ctx, r.db).
		Where("promotion_id = ? AND creator_id = ?", promotionID, creatorID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepositoryImpl) ListByPromotion(ctx context.Context, promotionID string, limit, offset int) ([]models.PromotionApplication, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.PromotionApplication{}).Where("promotion_id = ?", promotionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.PromotionApplication
	err := db.Preload("Creator").
		Where("promotion_id = ?", promotionID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&applications).Error
	return applications, total, err
}

func (r *ApplicationRepositoryImpl) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]models.PromotionApplication, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.PromotionApplication{}).Where("creator_id = ?", creatorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.PromotionApplication
	err := db.Preload("Promotion").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&applications).Error
	return applications, total, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	result := dbFrom(ctx, r.db).Model(&models.PromotionApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("promotion not found")

// PromotionFilter - фильтр каталога кампаний
type PromotionFilter struct {
	BrandID      string
	Status       models.PromotionStatus
	Category     string
	Platform     string
	City         string
	MinFollowers int
	Page         int
	PageSize     int
}

type PromotionRepository interface {
	Create(ctx context.Context, p *models.Promotion) error
	FindByID(ctx context.Context, id string) (*models.Promotion, error)
	Update(ctx context.Context, p *models.Promotion) error
	List(ctx context.Context, filter PromotionFilter) ([]models.Promotion, int64, error)
	IncrementViews(ctx context.Context, id string) error
	CloseExpired(ctx context.Context, now time.Time) ([]models.Promotion, error)
}

type PromotionRepositoryImpl struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &PromotionRepositoryImpl{db: db}
}

func (r *PromotionRepositoryImpl) Create(ctx context.Context, p *models.Promotion) error {
	return dbFrom(ctx, r.db).Create(p).Error
}

func (r *PromotionRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Promotion, error) {
	var p models.Promotion
	err := dbFrom(ctx, r.db).Preload("Brand").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepositoryImpl) Update(ctx context.Context, p *models.Promotion) error {
	return dbFrom(ctx, r.db).Save(p).Error
}

func (r *PromotionRepositoryImpl) List(ctx context.Context, filter PromotionFilter) ([]models.Promotion, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.Promotion{})

	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.MinFollowers > 0 {
		query = query.Where("min_followers <= ?", filter.MinFollowers)
	}
	if filter.Category != "" {
		query = query.Where("categories LIKE ?", "%"+filter.Category+"%")
	}
	if filter.Platform != "" {
		query = query.Where("platforms LIKE ?", "%"+filter.Platform+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var promotions []models.Promotion
	err := query.Order("created_at DESC").
		Limit(pageSize(filter.PageSize)).Offset(pageOffset(filter.Page, filter.PageSize)).
		Find(&promotions).Error
	return promotions, total, err
}

func (r *PromotionRepositoryImpl) IncrementViews(ctx context.Context, id string) error {
	return dbFrom(ctx, r.db).Model(&models.Promotion{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CloseExpired переводит активные кампании с истекшим дедлайном в closed
// и возвращает затронутые записи. Вызывается фоновым воркером.
func (r *PromotionRepositoryImpl) CloseExpired(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	db := dbFrom(ctx, r.db)

	var expired []models.Promotion
	err := db.Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.PromotionStatusActive, now).
		Find(&expired).Error
	if err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(expired))
	for i := range expired {
		ids = append(ids, expired[i].ID)
	}

	err = db.Model(&models.Promotion{}).Where("id IN ?", ids).Updates(map[string]interface{}{
		"status":     models.PromotionStatusClosed,
		"closed_at":  now,
		"updated_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	return expired, nil
}

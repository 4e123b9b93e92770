package repositories

import (
	"context"
	"errors"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// CreatorFilter - фильтр публичного каталога креаторов
type CreatorFilter struct {
	Category     string
	Platform     string
	City         string
	MinFollowers int
	Page         int
	PageSize     int
}

type ProfileRepository interface {
	UpsertCreatorProfile(ctx context.Context, profile *models.CreatorProfile) error
	UpsertBrandProfile(ctx context.Context, profile *models.BrandProfile) error
	FindCreatorByUserID(ctx context.Context, userID string) (*models.CreatorProfile, error)
	FindBrandByUserID(ctx context.Context, userID string) (*models.BrandProfile, error)
	ListPublicCreators(ctx context.Context, filter CreatorFilter) ([]models.CreatorProfile, int64, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) UpsertCreatorProfile(ctx context.Context, profile *models.CreatorProfile) error {
	db := dbFrom(ctx, r.db)
	var existing models.CreatorProfile
	err := db.First(&existing, "user_id = ?", profile.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpsertBrandProfile(ctx context.Context, profile *models.BrandProfile) error {
	db := dbFrom(ctx, r.db)
	var existing models.BrandProfile
	err := db.First(&existing, "user_id = ?", profile.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(profile).Error
	}
	if err != nil {
		return err
	}
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) FindCreatorByUserID(ctx context.Context, userID string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	err := dbFrom(ctx, r.db).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindBrandByUserID(ctx context.Context, userID string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := dbFrom(ctx, r.db).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) ListPublicCreators(ctx context.Context, filter CreatorFilter) ([]models.CreatorProfile, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.CreatorProfile{}).Where("is_public = ?", true)

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.MinFollowers > 0 {
		query = query.Where("followers >= ?", filter.MinFollowers)
	}
	// Фильтры по jsonb-массивам делаем на стороне БД только для постгреса,
	// для остальных диалектов сравнение по подстроке.
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

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var profiles []models.CreatorProfile
	err := query.Order("followers DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&profiles).Error
	return profiles, total, err
}

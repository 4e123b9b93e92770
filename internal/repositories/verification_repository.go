package repositories

import (
	"context"
	"errors"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification record not found")

// VerificationFilter - фильтр админского списка записей верификации
type VerificationFilter struct {
	Status   models.OverallStatus
	Page     int
	PageSize int
}

type VerificationRepository interface {
	FindCreatorByUserID(ctx context.Context, userID string) (*models.CreatorVerification, error)
	FindBrandByUserID(ctx context.Context, userID string) (*models.BrandVerification, error)
	SaveCreator(ctx context.Context, v *models.CreatorVerification) error
	SaveBrand(ctx context.Context, v *models.BrandVerification) error
	ListCreators(ctx context.Context, filter VerificationFilter) ([]models.CreatorVerification, int64, error)
	ListBrands(ctx context.Context, filter VerificationFilter) ([]models.BrandVerification, int64, error)
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) FindCreatorByUserID(ctx context.Context, userID string) (*models.CreatorVerification, error) {
	var v models.CreatorVerification
	err := dbFrom(ctx, r.db).First(&v, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepositoryImpl) FindBrandByUserID(ctx context.Context, userID string) (*models.BrandVerification, error) {
	var v models.BrandVerification
	err := dbFrom(ctx, r.db).First(&v, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

// SaveCreator сохраняет запись целиком. Save вызывает BeforeSave,
// так что OverallStatus всегда пересчитан перед записью.
func (r *VerificationRepositoryImpl) SaveCreator(ctx context.Context, v *models.CreatorVerification) error {
	return dbFrom(ctx, r.db).Save(v).Error
}

func (r *VerificationRepositoryImpl) SaveBrand(ctx context.Context, v *models.BrandVerification) error {
	return dbFrom(ctx, r.db).Save(v).Error
}

func (r *VerificationRepositoryImpl) ListCreators(ctx context.Context, filter VerificationFilter) ([]models.CreatorVerification, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.CreatorVerification{})
	if filter.Status != "" {
		query = query.Where("overall_status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.CreatorVerification
	err := query.Order("created_at ASC").
		Limit(pageSize(filter.PageSize)).Offset(pageOffset(filter.Page, filter.PageSize)).
		Find(&records).Error
	return records, total, err
}

func (r *VerificationRepositoryImpl) ListBrands(ctx context.Context, filter VerificationFilter) ([]models.BrandVerification, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.BrandVerification{})
	if filter.Status != "" {
		query = query.Where("overall_status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.BrandVerification
	err := query.Order("created_at ASC").
		Limit(pageSize(filter.PageSize)).Offset(pageOffset(filter.Page, filter.PageSize)).
		Find(&records).Error
	return records, total, err
}

func pageSize(size int) int {
	if size < 1 || size > 100 {
		return 20
	}
	return size
}

func pageOffset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize(size)
}

package repositories

import (
	"context"
	"errors"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOfferNotFound = errors.New("offer not found")

type OfferRepository interface {
	Create(ctx context.Context, o *models.Offer) error
	FindByID(ctx context.Context, id string) (*models.Offer, error)
	Update(ctx context.Context, o *models.Offer) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Offer, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Offer, int64, error)
}

type OfferRepositoryImpl struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &OfferRepositoryImpl{db: db}
}

func (r *OfferRepositoryImpl) Create(ctx context.Context, o *models.Offer) error {
	return dbFrom(ctx, r.db).Create(o).Error
}

func (r *OfferRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Offer, error) {
	var o models.Offer
	err := dbFrom(ctx, r.db).First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepositoryImpl) Update(ctx context.Context, o *models.Offer) error {
	return dbFrom(ctx, r.db).Save(o).Error
}

func (r *OfferRepositoryImpl) ListByConversation(ctx context.Context, conversationID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := dbFrom(ctx, r.db).Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepositoryImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Offer, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.Offer{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.Offer
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&offers).Error
	return offers, total, err
}

package repositories

import (
	"context"
	"errors"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrSubmissionNotFound = errors.New("work submission not found")
)

// OrderFilter - фильтр списка заказов
type OrderFilter struct {
	BrandID   string
	CreatorID string
	Status    models.OrderStatus
	Page      int
	PageSize  int
}

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// FindByIDForUpdate блокирует строку заказа до конца транзакции.
	// Используется settle-операцией, вызывать только внутри UnitOfWork.Do.
	FindByIDForUpdate(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)

	CreateSubmission(ctx context.Context, s *models.WorkSubmission) error
	FindSubmissionByID(ctx context.Context, id string) (*models.WorkSubmission, error)
	UpdateSubmission(ctx context.Context, s *models.WorkSubmission) error
	ListSubmissionsByOrder(ctx context.Context, orderID string) ([]models.WorkSubmission, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPaymentsByOrder(ctx context.Context, orderID string) ([]models.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID string, limit, offset int) ([]models.Payment, int64, error)
	// CreatorBalance суммирует завершенные credit-строки журнала.
	CreatorBalance(ctx context.Context, creatorID string) (float64, error)
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, o *models.Order) error {
	return dbFrom(ctx, r.db).Create(o).Error
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := dbFrom(ctx, r.db).First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) FindByIDForUpdate(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, o *models.Order) error {
	return dbFrom(ctx, r.db).Save(o).Error
}

func (r *OrderRepositoryImpl) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.Order{})

	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CreatorID != "" {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Order("created_at DESC").
		Limit(pageSize(filter.PageSize)).Offset(pageOffset(filter.Page, filter.PageSize)).
		Find(&orders).Error
	return orders, total, err
}

// Submissions

func (r *OrderRepositoryImpl) CreateSubmission(ctx context.Context, s *models.WorkSubmission) error {
	return dbFrom(ctx, r.db).Create(s).Error
}

func (r *OrderRepositoryImpl) FindSubmissionByID(ctx context.Context, id string) (*models.WorkSubmission, error) {
	var s models.WorkSubmission
	err := dbFrom(ctx, r.db).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *OrderRepositoryImpl) UpdateSubmission(ctx context.Context, s *models.WorkSubmission) error {
	return dbFrom(ctx, r.db).Save(s).Error
}

func (r *OrderRepositoryImpl) ListSubmissionsByOrder(ctx context.Context, orderID string) ([]models.WorkSubmission, error) {
	var submissions []models.WorkSubmission
	err := dbFrom(ctx, r.db).Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// Payments

func (r *OrderRepositoryImpl) CreatePayment(ctx context.Context, p *models.Payment) error {
	return dbFrom(ctx, r.db).Create(p).Error
}

func (r *OrderRepositoryImpl) ListPaymentsByOrder(ctx context.Context, orderID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := dbFrom(ctx, r.db).Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *OrderRepositoryImpl) ListPaymentsByUser(ctx context.Context, userID string, limit, offset int) ([]models.Payment, int64, error) {
	db := dbFrom(ctx, r.db)
	query := db.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, total, err
}

func (r *OrderRepositoryImpl) CreatorBalance(ctx context.Context, creatorID string) (float64, error) {
	var balance float64
	err := dbFrom(ctx, r.db).Model(&models.Payment{}).
		Where("user_id = ? AND direction = ? AND status = ?",
			creatorID, models.PaymentDirectionCredit, models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	return balance, err
}

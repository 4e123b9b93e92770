package repositories

import (
	"context"
	"errors"
	"time"

	"collabhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTokenNotFound     = errors.New("refresh token not found")
)

// UserFilter - фильтр админского списка пользователей
type UserFilter struct {
	Role     models.UserRole
	Status   models.UserStatus
	Page     int
	PageSize int
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error
	VerifyUser(ctx context.Context, userID string) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	FindByRole(ctx context.Context, role models.UserRole, limit, offset int) ([]models.User, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)

	// RefreshToken operations
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID string) error
	CleanExpiredRefreshTokens(ctx context.Context) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := dbFrom(ctx, r.db).Preload("CreatorProfile").Preload("BrandProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := dbFrom(ctx, r.db).Preload("CreatorProfile").Preload("BrandProfile").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	db := dbFrom(ctx, r.db)
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	result := dbFrom(ctx, r.db).Model(user).Updates(map[string]interface{}{
		"email":              user.Email,
		"role":               user.Role,
		"status":             user.Status,
		"is_verified":        user.IsVerified,
		"verification_token": user.VerificationToken,
		"reset_token":        user.ResetToken,
		"reset_token_exp":    user.ResetTokenExp,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error {
	result := dbFrom(ctx, r.db).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) VerifyUser(ctx context.Context, userID string) error {
	result := dbFrom(ctx, r.db).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"verification_token": "",
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	result := dbFrom(ctx, r.db).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByRole(ctx context.Context, role models.UserRole, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := dbFrom(ctx, r.db).Where("role = ?", role).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(pageSize(filter.PageSize)).Offset(pageOffset(filter.Page, filter.PageSize)).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := dbFrom(ctx, r.db).First(&user, "verification_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := dbFrom(ctx, r.db).First(&user, "reset_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return dbFrom(ctx, r.db).Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := dbFrom(ctx, r.db).First(&rt, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *UserRepositoryImpl) DeleteRefreshToken(ctx context.Context, token string) error {
	return dbFrom(ctx, r.db).Delete(&models.RefreshToken{}, "token = ?", token).Error
}

func (r *UserRepositoryImpl) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	return dbFrom(ctx, r.db).Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

func (r *UserRepositoryImpl) CleanExpiredRefreshTokens(ctx context.Context) error {
	return dbFrom(ctx, r.db).Delete(&models.RefreshToken{}, "expires_at < ?", time.Now()).Error
}

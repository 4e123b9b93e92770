package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=creator brand"`

	// Поля для креатора
	DisplayName string `json:"display_name,omitempty" binding:"required_if=Role creator"`

	// Поля для бренда
	CompanyName string `json:"company_name,omitempty" binding:"required_if=Role brand"`

	City string `json:"city,omitempty"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailRequest - запрос подтверждения email
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// PasswordResetRequest - запрос сброса пароля
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm - подтверждение сброса пароля
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePasswordRequest - смена пароля авторизованным пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// LoginResponse - ответ с токенами
type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// UserDTO - базовая информация о пользователе
type UserDTO struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Role       models.UserRole   `json:"role"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"is_verified"`
	CreatedAt  time.Time         `json:"created_at"`
}

// AdminUserCriteria - фильтр админского списка пользователей
type AdminUserCriteria struct {
	Pagination
	Role   models.UserRole   `form:"role" binding:"omitempty,oneof=creator brand admin"`
	Status models.UserStatus `form:"status" binding:"omitempty,oneof=pending active suspended banned"`
}

// UpdateUserStatusRequest - админское изменение статуса аккаунта
type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=active suspended banned"`
}

// UserListResponse - страница пользователей для админа
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Meta  ListMeta  `json:"meta"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

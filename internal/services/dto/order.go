package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// CreateOrderRequest - создание заказа брендом.
// ApplicationID опционален: заказ может рождаться из принятого отклика.
type CreateOrderRequest struct {
	CreatorID     string  `json:"creator_id" binding:"required,uuid"`
	ApplicationID *string `json:"application_id" binding:"omitempty,uuid"`
	Title         string  `json:"title" binding:"required,min=3,max=200"`
	Description   string  `json:"description" binding:"omitempty,max=5000"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

// SubmitWorkRequest - сдача работы креатором
type SubmitWorkRequest struct {
	Files       []string `json:"files" binding:"required,min=1,max=20,dive,url"`
	Description string   `json:"description" binding:"omitempty,max=3000"`
}

// ReviewSubmissionRequest - вердикт бренда по сдаче
type ReviewSubmissionRequest struct {
	Approve    bool   `json:"approve"`
	ReviewNote string `json:"review_note" binding:"omitempty,max=2000"`
}

// CancelOrderRequest - отмена заказа
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=1000"`
}

// OrderSearchCriteria - фильтр списка заказов
type OrderSearchCriteria struct {
	Pagination
	Status models.OrderStatus `form:"status" binding:"omitempty,oneof=pending in_progress delivered completed cancelled"`
}

// OrderResponse - заказ в ответе
type OrderResponse struct {
	ID            string               `json:"id"`
	BrandID       string               `json:"brand_id"`
	CreatorID     string               `json:"creator_id"`
	ApplicationID *string              `json:"application_id,omitempty"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	Amount        float64              `json:"amount"`
	Status        models.OrderStatus   `json:"status"`
	StatusHistory []models.StatusEntry `json:"status_history,omitempty"`
	SettledAt     *time.Time           `json:"settled_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// OrderListResponse - страница заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Meta   ListMeta        `json:"meta"`
}

// SubmissionResponse - сдача работы в ответе
type SubmissionResponse struct {
	ID              string                `json:"id"`
	OrderID         string                `json:"order_id"`
	CreatorID       string                `json:"creator_id"`
	Files           []string              `json:"files"`
	Status          models.ApprovalStatus `json:"status"`
	ReviewNote      string                `json:"review_note,omitempty"`
	ReviewedAt      *time.Time            `json:"reviewed_at,omitempty"`
	PaymentReleased bool                  `json:"payment_released"`
	CreatedAt       time.Time             `json:"created_at"`
}

// PaymentResponse - строка журнала платежей в ответе
type PaymentResponse struct {
	ID            string                  `json:"id"`
	OrderID       string                  `json:"order_id"`
	TransactionID string                  `json:"transaction_id"`
	Amount        float64                 `json:"amount"`
	Direction     models.PaymentDirection `json:"direction"`
	Status        models.PaymentStatus    `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
}

// BalanceResponse - выведенный баланс креатора
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// PaymentListResponse - страница журнала платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Meta     ListMeta          `json:"meta"`
}

package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// CreatePromotionRequest - создание кампании брендом
type CreatePromotionRequest struct {
	Title        string     `json:"title" binding:"required,min=3,max=200"`
	Description  string     `json:"description" binding:"omitempty,max=5000"`
	Categories   []string   `json:"categories" binding:"omitempty,max=10"`
	Platforms    []string   `json:"platforms" binding:"omitempty,max=10,dive,oneof=instagram youtube tiktok twitter other"`
	Budget       float64    `json:"budget" binding:"required,gt=0"`
	MinFollowers int        `json:"min_followers" binding:"omitempty,min=0"`
	City         string     `json:"city" binding:"omitempty,max=100"`
	Deadline     *time.Time `json:"deadline"`
	Publish      bool       `json:"publish"`
}

// UpdatePromotionRequest - правка кампании
type UpdatePromotionRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=3,max=200"`
	Description  *string    `json:"description" binding:"omitempty,max=5000"`
	Budget       *float64   `json:"budget" binding:"omitempty,gt=0"`
	MinFollowers *int       `json:"min_followers" binding:"omitempty,min=0"`
	City         *string    `json:"city" binding:"omitempty,max=100"`
	Deadline     *time.Time `json:"deadline"`
}

// PromotionSearchCriteria - фильтр каталога кампаний
type PromotionSearchCriteria struct {
	Pagination
	Category     string `form:"category"`
	Platform     string `form:"platform"`
	City         string `form:"city"`
	MinFollowers int    `form:"min_followers" binding:"omitempty,min=0"`
}

// PromotionResponse - кампания в ответе
type PromotionResponse struct {
	ID           string                 `json:"id"`
	BrandID      string                 `json:"brand_id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Categories   []string               `json:"categories,omitempty"`
	Platforms    []string               `json:"platforms,omitempty"`
	Budget       float64                `json:"budget"`
	MinFollowers int                    `json:"min_followers"`
	City         string                 `json:"city,omitempty"`
	Status       models.PromotionStatus `json:"status"`
	Deadline     *time.Time             `json:"deadline,omitempty"`
	Views        int64                  `json:"views"`
	CreatedAt    time.Time              `json:"created_at"`
}

// PromotionListResponse - страница каталога кампаний
type PromotionListResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	Meta       ListMeta            `json:"meta"`
}

// ApplyRequest - отклик креатора на кампанию
type ApplyRequest struct {
	CoverLetter   string   `json:"cover_letter" binding:"omitempty,max=3000"`
	ProposedPrice *float64 `json:"proposed_price" binding:"omitempty,gt=0"`
}

// ApplicationResponse - отклик в ответе
type ApplicationResponse struct {
	ID            string                   `json:"id"`
	PromotionID   string                   `json:"promotion_id"`
	CreatorID     string                   `json:"creator_id"`
	CoverLetter   string                   `json:"cover_letter,omitempty"`
	ProposedPrice *float64                 `json:"proposed_price,omitempty"`
	Status        models.ApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ApplicationListResponse - страница откликов
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Meta         ListMeta              `json:"meta"`
}

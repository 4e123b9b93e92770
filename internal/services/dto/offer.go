package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// CreateOfferRequest - предложение условий в диалоге
type CreateOfferRequest struct {
	ConversationID string     `json:"conversation_id" binding:"required,uuid"`
	Title          string     `json:"title" binding:"required,min=3,max=200"`
	Description    string     `json:"description" binding:"omitempty,max=3000"`
	Amount         float64    `json:"amount" binding:"required,gt=0"`
	Deadline       *time.Time `json:"deadline"`
}

// RespondOfferRequest - ответ на предложение
type RespondOfferRequest struct {
	Accept bool `json:"accept"`
}

// CounterOfferRequest - контр-предложение
type CounterOfferRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=200"`
	Description string     `json:"description" binding:"omitempty,max=3000"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Deadline    *time.Time `json:"deadline"`
}

// OfferResponse - предложение в ответе
type OfferResponse struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversation_id"`
	SenderID       string             `json:"sender_id"`
	ReceiverID     string             `json:"receiver_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Amount         float64            `json:"amount"`
	Deadline       *time.Time         `json:"deadline,omitempty"`
	Status         models.OfferStatus `json:"status"`
	CounterOfferID *string            `json:"counter_offer_id,omitempty"`
	RespondedAt    *time.Time         `json:"responded_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// OfferListResponse - страница предложений
type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
	Meta   ListMeta        `json:"meta"`
}

package models

import "time"

// Offer - предложение условий сотрудничества внутри диалога.
// Контр-предложение ссылается на исходное через CounterOfferID,
// исходное при этом переходит в статус countered.
type Offer struct {
	BaseModel
	ConversationID string `gorm:"index;not null"`
	SenderID       string `gorm:"index;not null"`
	ReceiverID     string `gorm:"index;not null"`

	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text"`
	Amount      float64 `gorm:"not null"`
	Deadline    *time.Time

	Status         OfferStatus `gorm:"type:varchar(20);default:'pending';index"`
	CounterOfferID *string
	RespondedAt    *time.Time

	Conversation *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	Sender       *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver     *User         `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	CounterOffer *Offer        `gorm:"foreignKey:CounterOfferID" json:"counter_offer,omitempty"`
}

// IsPending сообщает, можно ли еще отвечать на предложение.
func (o *Offer) IsPending() bool {
	return o.Status == OfferStatusPending
}

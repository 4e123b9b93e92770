package models

import (
	"time"

	"gorm.io/datatypes"
)

// Promotion - кампания бренда, на которую откликаются креаторы
type Promotion struct {
	BaseModel
	BrandID     string `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`

	Categories datatypes.JSON `gorm:"type:jsonb"` // []string
	Platforms  datatypes.JSON `gorm:"type:jsonb"` // []string

	Budget       float64 `gorm:"not null"`
	MinFollowers int
	City         string

	Status   PromotionStatus `gorm:"type:varchar(20);default:'draft';index"`
	Deadline *time.Time      `gorm:"index"`
	ClosedAt *time.Time

	// Счетчик просмотров карточки кампании
	Views int64

	Brand        *User                  `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Applications []PromotionApplication `gorm:"foreignKey:PromotionID" json:"applications,omitempty"`
}

// IsOpen сообщает, принимает ли кампания новые отклики.
func (p *Promotion) IsOpen() bool {
	if p.Status != PromotionStatusActive {
		return false
	}
	if p.Deadline != nil && time.Now().After(*p.Deadline) {
		return false
	}
	return true
}

// PromotionApplication - отклик креатора на кампанию.
// Пара (promotion_id, creator_id) уникальна: повторный отклик запрещен.
type PromotionApplication struct {
	BaseModel
	PromotionID string `gorm:"uniqueIndex:idx_promotion_creator;not null"`
	CreatorID   string `gorm:"uniqueIndex:idx_promotion_creator;not null"`

	CoverLetter   string   `gorm:"type:text"`
	ProposedPrice *float64

	Status ApplicationStatus `gorm:"type:varchar(20);default:'pending';index"`

	Promotion *Promotion `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"`
	Creator   *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

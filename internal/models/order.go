package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StatusEntry - одна запись в истории статусов заказа
type StatusEntry struct {
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`
	Note      string      `json:"note,omitempty"`
}

// Order - оплачиваемая работа креатора для бренда.
// StatusHistory - append-only журнал переходов, хранится как jsonb.
// SettledAt - защита от повторного расчета: заполняется ровно один раз.
type Order struct {
	BaseModel
	BrandID       string `gorm:"index;not null"`
	CreatorID     string `gorm:"index;not null"`
	PromotionID   *string
	ApplicationID *string

	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text"`
	Amount      float64 `gorm:"not null"`

	Status        OrderStatus    `gorm:"type:varchar(20);default:'pending';index"`
	StatusHistory datatypes.JSON `gorm:"type:jsonb"` // []StatusEntry
	// Денормализованная копия файлов последней сдачи, чтобы листинг
	// заказов не ходил в work_submissions.
	SubmittedDeliverables datatypes.JSON `gorm:"type:jsonb"` // []string
	SettledAt             *time.Time

	Brand       *User            `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Creator     *User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Submissions []WorkSubmission `gorm:"foreignKey:OrderID" json:"submissions,omitempty"`
}

// AppendStatus переводит заказ в новый статус и дописывает запись в историю.
// Историю никогда не переписываем, только дополняем.
func (o *Order) AppendStatus(status OrderStatus, changedBy, note string) error {
	entries, err := o.History()
	if err != nil {
		return err
	}
	entries = append(entries, StatusEntry{
		Status:    status,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
		Note:      note,
	})
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	o.Status = status
	o.StatusHistory = datatypes.JSON(raw)
	return nil
}

// History декодирует журнал статусов. Пустой jsonb - пустая история.
func (o *Order) History() ([]StatusEntry, error) {
	if len(o.StatusHistory) == 0 {
		return nil, nil
	}
	var entries []StatusEntry
	if err := json.Unmarshal(o.StatusHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// IsSettled сообщает, был ли заказ уже рассчитан.
func (o *Order) IsSettled() bool {
	return o.SettledAt != nil
}

// WorkSubmission - сдача работы креатором по заказу
type WorkSubmission struct {
	BaseModel
	OrderID   string `gorm:"index;not null"`
	CreatorID string `gorm:"index;not null"`

	Files       datatypes.JSON `gorm:"type:jsonb;not null"` // []string
	Description string         `gorm:"type:text"`

	Status          ApprovalStatus `gorm:"type:varchar(20);default:'pending';index"`
	ReviewNote      string         `gorm:"type:text"`
	ReviewedAt      *time.Time
	PaymentReleased bool `gorm:"default:false"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// Payment - строка бухгалтерского журнала.
// Расчет заказа порождает две строки с общим TransactionID:
// debit у бренда и credit у креатора. Строки неизменяемы после создания.
// Баланс креатора выводится суммированием завершенных credit-строк,
// отдельного изменяемого счетчика нет.
type Payment struct {
	BaseModel
	OrderID       string `gorm:"index;not null"`
	UserID        string `gorm:"index;not null"`
	TransactionID string `gorm:"index;not null"`

	Amount    float64          `gorm:"not null"`
	Direction PaymentDirection `gorm:"type:varchar(10);not null"`
	Status    PaymentStatus    `gorm:"type:varchar(20);default:'pending'"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

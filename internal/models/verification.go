package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckKind - вид отдельной проверки внутри записи верификации
type CheckKind string

const (
	CheckKindEmail   CheckKind = "email"
	CheckKindPhone   CheckKind = "phone"
	CheckKindPAN     CheckKind = "pan"
	CheckKindIDProof CheckKind = "id_proof" // креатор
	CheckKindGST     CheckKind = "gst"      // бренд
	CheckKindUPI     CheckKind = "upi"
	CheckKindCard    CheckKind = "card"
)

// SubCheck - общее состояние одной проверки
type SubCheck struct {
	Status          CheckStatus `gorm:"type:varchar(20);default:'pending'"`
	VerifiedAt      *time.Time
	RejectionReason string
}

// CodeCheck - проверка через одноразовый код (email, телефон)
type CodeCheck struct {
	SubCheck         `gorm:"embedded"`
	Value            string // адрес или номер, который подтверждается
	VerificationCode string
	CodeSentAt       *time.Time
}

// DocumentCheck - проверка по документу (PAN, ID, GST)
type DocumentCheck struct {
	SubCheck    `gorm:"embedded"`
	Number      string
	DocumentURL string
}

// PaymentCheck - проверка платежного метода (UPI, карта)
type PaymentCheck struct {
	SubCheck `gorm:"embedded"`
	Handle   string // UPI ID или маскированный номер карты
}

// FoldOverallStatus выводит агрегатный статус из под-проверок.
// Чистая функция: не зависит от порядка аргументов внутри групп, идемпотентна.
//
// verified  - все identity-проверки verified И хотя бы один платежный метод verified
// rejected  - любая identity-проверка rejected ИЛИ оба платежных метода rejected
// pending   - все остальные случаи
func FoldOverallStatus(identity []CheckStatus, payment []CheckStatus) OverallStatus {
	allIdentityVerified := true
	for _, s := range identity {
		if s == CheckStatusRejected {
			return OverallStatusRejected
		}
		if s != CheckStatusVerified {
			allIdentityVerified = false
		}
	}

	anyPaymentVerified := false
	allPaymentRejected := len(payment) > 0
	for _, s := range payment {
		if s == CheckStatusVerified {
			anyPaymentVerified = true
		}
		if s != CheckStatusRejected {
			allPaymentRejected = false
		}
	}

	if allPaymentRejected {
		return OverallStatusRejected
	}
	if allIdentityVerified && anyPaymentVerified {
		return OverallStatusVerified
	}
	return OverallStatusPending
}

// CreatorVerification - запись верификации креатора, 1-1 с User.
// OverallStatus никогда не выставляется прикладным кодом напрямую:
// пересчитывается в BeforeSave из под-статусов.
type CreatorVerification struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null"`

	Email   CodeCheck     `gorm:"embedded;embeddedPrefix:email_"`
	Phone   CodeCheck     `gorm:"embedded;embeddedPrefix:phone_"`
	PAN     DocumentCheck `gorm:"embedded;embeddedPrefix:pan_"`
	IDProof DocumentCheck `gorm:"embedded;embeddedPrefix:id_proof_"`
	UPI     PaymentCheck  `gorm:"embedded;embeddedPrefix:upi_"`
	Card    PaymentCheck  `gorm:"embedded;embeddedPrefix:card_"`

	OverallStatus OverallStatus `gorm:"type:varchar(20);default:'pending'"`
	ReviewedBy    string
	ReviewedAt    *time.Time
}

func (v *CreatorVerification) BeforeSave(tx *gorm.DB) error {
	v.OverallStatus = FoldOverallStatus(
		[]CheckStatus{v.Email.Status, v.Phone.Status, v.PAN.Status, v.IDProof.Status},
		[]CheckStatus{v.UPI.Status, v.Card.Status},
	)
	return nil
}

func (v *CreatorVerification) GetID() string            { return v.ID }
func (v *CreatorVerification) GetUserID() string        { return v.UserID }
func (v *CreatorVerification) Overall() OverallStatus   { return v.OverallStatus }
func (v *CreatorVerification) SetReviewer(adminID string, at time.Time) {
	v.ReviewedBy = adminID
	v.ReviewedAt = &at
}

func (v *CreatorVerification) Code(kind CheckKind) *CodeCheck {
	switch kind {
	case CheckKindEmail:
		return &v.Email
	case CheckKindPhone:
		return &v.Phone
	}
	return nil
}

func (v *CreatorVerification) Document(kind CheckKind) *DocumentCheck {
	switch kind {
	case CheckKindPAN:
		return &v.PAN
	case CheckKindIDProof:
		return &v.IDProof
	}
	return nil
}

func (v *CreatorVerification) Payment(kind CheckKind) *PaymentCheck {
	switch kind {
	case CheckKindUPI:
		return &v.UPI
	case CheckKindCard:
		return &v.Card
	}
	return nil
}

// BrandVerification - запись верификации бренда, 1-1 с User.
// Отличается от креаторской четвертой identity-проверкой: GST вместо ID proof.
type BrandVerification struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null"`

	Email CodeCheck     `gorm:"embedded;embeddedPrefix:email_"`
	Phone CodeCheck     `gorm:"embedded;embeddedPrefix:phone_"`
	PAN   DocumentCheck `gorm:"embedded;embeddedPrefix:pan_"`
	GST   DocumentCheck `gorm:"embedded;embeddedPrefix:gst_"`
	UPI   PaymentCheck  `gorm:"embedded;embeddedPrefix:upi_"`
	Card  PaymentCheck  `gorm:"embedded;embeddedPrefix:card_"`

	OverallStatus OverallStatus `gorm:"type:varchar(20);default:'pending'"`
	ReviewedBy    string
	ReviewedAt    *time.Time
}

func (v *BrandVerification) BeforeSave(tx *gorm.DB) error {
	v.OverallStatus = FoldOverallStatus(
		[]CheckStatus{v.Email.Status, v.Phone.Status, v.PAN.Status, v.GST.Status},
		[]CheckStatus{v.UPI.Status, v.Card.Status},
	)
	return nil
}

func (v *BrandVerification) GetID() string          { return v.ID }
func (v *BrandVerification) GetUserID() string      { return v.UserID }
func (v *BrandVerification) Overall() OverallStatus { return v.OverallStatus }
func (v *BrandVerification) SetReviewer(adminID string, at time.Time) {
	v.ReviewedBy = adminID
	v.ReviewedAt = &at
}

func (v *BrandVerification) Code(kind CheckKind) *CodeCheck {
	switch kind {
	case CheckKindEmail:
		return &v.Email
	case CheckKindPhone:
		return &v.Phone
	}
	return nil
}

func (v *BrandVerification) Document(kind CheckKind) *DocumentCheck {
	switch kind {
	case CheckKindPAN:
		return &v.PAN
	case CheckKindGST:
		return &v.GST
	}
	return nil
}

func (v *BrandVerification) Payment(kind CheckKind) *PaymentCheck {
	switch kind {
	case CheckKindUPI:
		return &v.UPI
	case CheckKindCard:
		return &v.Card
	}
	return nil
}

// VerificationRecord - общий вид обеих записей для сервисного слоя.
type VerificationRecord interface {
	GetID() string
	GetUserID() string
	Overall() OverallStatus
	SetReviewer(adminID string, at time.Time)
	Code(kind CheckKind) *CodeCheck
	Document(kind CheckKind) *DocumentCheck
	Payment(kind CheckKind) *PaymentCheck
}

// VerificationDocumentKind - тег варианта для админского списка
type VerificationDocumentKind string

const (
	VerificationDocumentCreator VerificationDocumentKind = "creator"
	VerificationDocumentBrand   VerificationDocumentKind = "brand"
)

// VerificationDocument - явный тегированный вариант для админского списка,
// собирается маппинг-функциями из конкретных моделей.
type VerificationDocument struct {
	Kind          VerificationDocumentKind   `json:"kind"`
	ID            string                     `json:"id"`
	UserID        string                     `json:"user_id"`
	OverallStatus OverallStatus              `json:"overall_status"`
	Checks        map[CheckKind]CheckStatus  `json:"checks"`
	ReviewedBy    string                     `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time                 `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// NewCreatorVerificationDocument маппит креаторскую запись в тегированный вид.
func NewCreatorVerificationDocument(v *CreatorVerification) VerificationDocument {
	return VerificationDocument{
		Kind:          VerificationDocumentCreator,
		ID:            v.ID,
		UserID:        v.UserID,
		OverallStatus: v.OverallStatus,
		Checks: map[CheckKind]CheckStatus{
			CheckKindEmail:   v.Email.Status,
			CheckKindPhone:   v.Phone.Status,
			CheckKindPAN:     v.PAN.Status,
			CheckKindIDProof: v.IDProof.Status,
			CheckKindUPI:     v.UPI.Status,
			CheckKindCard:    v.Card.Status,
		},
		ReviewedBy: v.ReviewedBy,
		ReviewedAt: v.ReviewedAt,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// NewBrandVerificationDocument маппит брендовую запись в тегированный вид.
func NewBrandVerificationDocument(v *BrandVerification) VerificationDocument {
	return VerificationDocument{
		Kind:          VerificationDocumentBrand,
		ID:            v.ID,
		UserID:        v.UserID,
		OverallStatus: v.OverallStatus,
		Checks: map[CheckKind]CheckStatus{
			CheckKindEmail: v.Email.Status,
			CheckKindPhone: v.Phone.Status,
			CheckKindPAN:   v.PAN.Status,
			CheckKindGST:   v.GST.Status,
			CheckKindUPI:   v.UPI.Status,
			CheckKindCard:  v.Card.Status,
		},
		ReviewedBy: v.ReviewedBy,
		ReviewedAt: v.ReviewedAt,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

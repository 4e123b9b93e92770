package dto

import (
	"time"

	"collabhub_backend/internal/models"
)

// SubmitCodeCheckRequest - отправка значения для проверки кодом (email, телефон)
type SubmitCodeCheckRequest struct {
	Kind  models.CheckKind `json:"kind" binding:"required,oneof=email phone"`
	Value string           `json:"value" binding:"required,max=255"`
}

// VerifyCodeRequest - подтверждение одноразового кода.
// Value обязан совпадать со значением, для которого код выпускался.
type VerifyCodeRequest struct {
	Kind  models.CheckKind `json:"kind" binding:"required,oneof=email phone"`
	Value string           `json:"value" binding:"required,max=255"`
	Code  string           `json:"code" binding:"required,len=6"`
}

// SubmitDocumentCheckRequest - отправка документа (PAN, ID, GST)
type SubmitDocumentCheckRequest struct {
	Kind        models.CheckKind `json:"kind" binding:"required,oneof=pan id_proof gst"`
	Number      string           `json:"number" binding:"required,max=50"`
	DocumentURL string           `json:"document_url" binding:"required,url"`
}

// SubmitPaymentCheckRequest - отправка платежного метода (UPI, карта)
type SubmitPaymentCheckRequest struct {
	Kind   models.CheckKind `json:"kind" binding:"required,oneof=upi card"`
	Handle string           `json:"handle" binding:"required,max=100"`
}

// AdminSetCheckStatusRequest - ручное решение админа по одной проверке
type AdminSetCheckStatusRequest struct {
	Kind            models.CheckKind   `json:"kind" binding:"required,oneof=email phone pan id_proof gst upi card"`
	Status          models.CheckStatus `json:"status" binding:"required,oneof=verified rejected"`
	RejectionReason string             `json:"rejection_reason" binding:"required_if=Status rejected,max=500"`
}

// VerificationListCriteria - фильтр админского списка
type VerificationListCriteria struct {
	Pagination
	Role   models.UserRole      `form:"role" binding:"omitempty,oneof=creator brand"`
	Status models.OverallStatus `form:"status" binding:"omitempty,oneof=pending verified rejected"`
}

// CheckView - состояние одной проверки в ответе
type CheckView struct {
	Status          models.CheckStatus `json:"status"`
	VerifiedAt      *time.Time         `json:"verified_at,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

// VerificationResponse - состояние записи верификации для владельца
type VerificationResponse struct {
	ID            string                              `json:"id"`
	UserID        string                              `json:"user_id"`
	Role          models.UserRole                     `json:"role"`
	OverallStatus models.OverallStatus                `json:"overall_status"`
	Checks        map[models.CheckKind]CheckView      `json:"checks"`
	ReviewedAt    *time.Time                          `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time                           `json:"created_at"`
	UpdatedAt     time.Time                           `json:"updated_at"`
}

// VerificationListResponse - страница админского списка
type VerificationListResponse struct {
	Records []models.VerificationDocument `json:"records"`
	Meta    ListMeta                      `json:"meta"`
}

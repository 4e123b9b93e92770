package models

type UserStatus string
type UserRole string
type CheckStatus string
type OverallStatus string
type PromotionStatus string
type ApplicationStatus string
type OrderStatus string
type ApprovalStatus string
type OfferStatus string
type PaymentStatus string
type PaymentDirection string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleCreator UserRole = "creator"
	UserRoleBrand   UserRole = "brand"
	UserRoleAdmin   UserRole = "admin"

	CheckStatusPending    CheckStatus = "pending"
	CheckStatusProcessing CheckStatus = "processing"
	CheckStatusVerified   CheckStatus = "verified"
	CheckStatusRejected   CheckStatus = "rejected"

	OverallStatusPending  OverallStatus = "pending"
	OverallStatusVerified OverallStatus = "verified"
	OverallStatusRejected OverallStatus = "rejected"

	PromotionStatusDraft     PromotionStatus = "draft"
	PromotionStatusActive    PromotionStatus = "active"
	PromotionStatusClosed    PromotionStatus = "closed"
	PromotionStatusCancelled PromotionStatus = "cancelled"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"

	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusCountered OfferStatus = "countered"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	PaymentDirectionDebit  PaymentDirection = "debit"
	PaymentDirectionCredit PaymentDirection = "credit"
)

// IsTerminal сообщает, является ли статус заказа конечным.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

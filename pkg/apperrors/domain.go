package apperrors

import "net/http"

// Предопределенные доменные ошибки
var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

	// Пользователи
	ErrUserNotFound       = New(CodeUserNotFound, "user", "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "user", "Email already exists", http.StatusConflict)
	ErrUserNotVerified    = New(CodeUserNotVerified, "user", "User not verified", http.StatusForbidden)
	ErrUserSuspended      = New(CodeUserSuspended, "user", "User account suspended", http.StatusForbidden)
	ErrUserBanned         = New(CodeUserBanned, "user", "User account banned", http.StatusForbidden)
	ErrWeakPassword       = New(CodeWeakPassword, "user", "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "user", "Invalid user role", http.StatusBadRequest)

	// Верификация
	ErrVerificationNotFound = New(CodeVerificationNotFound, "verification", "Verification record not found", http.StatusNotFound)
	ErrInvalidCheckKind     = New(CodeInvalidCheckKind, "verification", "Unknown verification check kind", http.StatusBadRequest)
	ErrInvalidCode          = New(CodeInvalidCode, "verification", "Invalid verification code", http.StatusBadRequest)

	// Промо-кампании и отклики
	ErrPromotionNotFound   = New(CodePromotionNotFound, "promotion", "Promotion not found", http.StatusNotFound)
	ErrPromotionClosed     = New(CodePromotionClosed, "promotion", "Promotion is not accepting applications", http.StatusConflict)
	ErrAlreadyApplied      = New(CodeAlreadyApplied, "promotion", "You have already applied to this promotion", http.StatusConflict)
	ErrApplicationNotFound = New(CodeApplicationNotFound, "promotion", "Application not found", http.StatusNotFound)

	// Заказы и выплаты
	ErrOrderNotFound         = New(CodeOrderNotFound, "order", "Order not found", http.StatusNotFound)
	ErrSubmissionNotFound    = New(CodeSubmissionNotFound, "order", "Work submission not found", http.StatusNotFound)
	ErrOrderAlreadySettled   = New(CodeOrderAlreadySettled, "order", "Order is already settled", http.StatusConflict)
	ErrSubmissionNotPending  = New(CodeSubmissionNotPending, "order", "Work submission has already been reviewed", http.StatusConflict)
	ErrSubmissionNotApproved = New(CodeSubmissionNotApproved, "order", "Work submission is not approved", http.StatusConflict)
	ErrInvalidOrderStatus    = New(CodeInvalidStatus, "order", "Order is not in a valid state for this operation", http.StatusConflict)

	// Чат и офферы
	ErrConversationNotFound = New(CodeConversationNotFound, "chat", "Conversation not found", http.StatusNotFound)
	ErrOfferNotFound        = New(CodeOfferNotFound, "offer", "Offer not found", http.StatusNotFound)
	ErrOfferNotPending      = New(CodeOfferNotPending, "offer", "Offer is no longer pending", http.StatusConflict)
)

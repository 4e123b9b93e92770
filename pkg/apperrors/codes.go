package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и Авторизация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

// Доменные коды
const (
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUserNotVerified    ErrorCode = "USER_NOT_VERIFIED"
	CodeUserSuspended      ErrorCode = "USER_SUSPENDED"
	CodeUserBanned         ErrorCode = "USER_BANNED"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole    ErrorCode = "INVALID_USER_ROLE"

	CodeVerificationNotFound ErrorCode = "VERIFICATION_NOT_FOUND"
	CodeInvalidCheckKind     ErrorCode = "INVALID_CHECK_KIND"
	CodeInvalidCode          ErrorCode = "INVALID_CODE"

	CodePromotionNotFound   ErrorCode = "PROMOTION_NOT_FOUND"
	CodePromotionClosed     ErrorCode = "PROMOTION_CLOSED"
	CodeAlreadyApplied      ErrorCode = "ALREADY_APPLIED"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	CodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	CodeSubmissionNotFound   ErrorCode = "SUBMISSION_NOT_FOUND"
	CodeOrderAlreadySettled  ErrorCode = "ORDER_ALREADY_SETTLED"
	CodeSubmissionNotPending ErrorCode = "SUBMISSION_NOT_PENDING"
	CodeSubmissionNotApproved ErrorCode = "SUBMISSION_NOT_APPROVED"

	CodeConversationNotFound ErrorCode = "CONVERSATION_NOT_FOUND"
	CodeOfferNotFound        ErrorCode = "OFFER_NOT_FOUND"
	CodeOfferNotPending      ErrorCode = "OFFER_NOT_PENDING"
)

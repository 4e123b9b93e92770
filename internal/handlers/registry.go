package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	VerificationHandler *VerificationHandler
	PromotionHandler    *PromotionHandler
	OrderHandler        *OrderHandler
	ChatHandler         *ChatHandler
	OfferHandler        *OfferHandler
	NotificationHandler *NotificationHandler
}

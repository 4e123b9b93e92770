package services

import (
	"collabhub_backend/internal/email"
	"collabhub_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	VerificationService VerificationService
	PromotionService    PromotionService
	OrderService        OrderService
	ChatService         ChatService
	OfferService        OfferService
	NotificationService NotificationService
	EmailService        email.Provider
}

// NewServiceContainer собирает сервисы с общими зависимостями.
// publisher передается снаружи: транспорт realtime-событий сервисам не известен.
func NewServiceContainer(
	repos *repositories.Container,
	emailProvider email.Provider,
	publisher Publisher,
) *ServiceContainer {
	notifications := NewNotificationService(repos.Notification, publisher)

	return &ServiceContainer{
		AuthService:         NewAuthService(repos.User, repos.Profile, repos.UnitOfWork, emailProvider),
		ProfileService:      NewProfileService(repos.Profile, repos.User),
		VerificationService: NewVerificationService(repos.Verification, repos.User, emailProvider),
		PromotionService:    NewPromotionService(repos.Promotion, repos.Application, repos.Profile, notifications),
		OrderService:        NewOrderService(repos.Order, repos.Application, repos.UnitOfWork, notifications),
		ChatService:         NewChatService(repos.Chat, repos.User, notifications, publisher),
		OfferService:        NewOfferService(repos.Offer, repos.Chat, repos.UnitOfWork, notifications, publisher),
		NotificationService: notifications,
		EmailService:        emailProvider,
	}
}

package repositories

import "gorm.io/gorm"

// Container содержит все репозитории приложения.
type Container struct {
	User         UserRepository
	Profile      ProfileRepository
	Verification VerificationRepository
	Promotion    PromotionRepository
	Application  ApplicationRepository
	Order        OrderRepository
	Chat         ChatRepository
	Offer        OfferRepository
	Notification NotificationRepository
	UnitOfWork   UnitOfWork
}

func NewContainer(db *gorm.DB) *Container {
	return &Container{
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		Verification: NewVerificationRepository(db),
		Promotion:    NewPromotionRepository(db),
		Application:  NewApplicationRepository(db),
		Order:        NewOrderRepository(db),
		Chat:         NewChatRepository(db),
		Offer:        NewOfferRepository(db),
		Notification: NewNotificationRepository(db),
		UnitOfWork:   NewUnitOfWork(db),
	}
}

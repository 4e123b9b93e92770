package services

// Publisher доставляет realtime-событие подключенным клиентам пользователя.
// Реализация - websocket-менеджер; сервисы получают ее через конструктор
// и не знают о транспорте. Недоставленное событие не считается ошибкой
// бизнес-операции.
type Publisher interface {
	Publish(userID, event string, payload interface{}) error
}

// NoopPublisher - заглушка для тестов и офлайн-режима.
type NoopPublisher struct{}

func (NoopPublisher) Publish(userID, event string, payload interface{}) error { return nil }

// Имена realtime-событий, которые слушает клиент.
const (
	EventNewNotification    = "newNotification"
	EventNewMessage         = "new_message"
	EventConversationUpdate = "conversation_update"
	EventNewOffer           = "new_offer"
	EventOfferUpdated       = "offer_updated"
)

package services

import (
	"context"
	"time"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"
)

type OfferService interface {
	CreateOffer(ctx context.Context, senderID string, req *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	RespondOffer(ctx context.Context, userID, offerID string, req *dto.RespondOfferRequest) (*dto.OfferResponse, error)
	CounterOffer(ctx context.Context, userID, offerID string, req *dto.CounterOfferRequest) (*dto.OfferResponse, error)
	GetOffer(ctx context.Context, userID, offerID string) (*dto.OfferResponse, error)
	ListConversationOffers(ctx context.Context, userID, conversationID string) ([]dto.OfferResponse, error)
	ListMyOffers(ctx context.Context, userID string, p dto.Pagination) (*dto.OfferListResponse, error)
}

type OfferServiceImpl struct {
	offerRepo     repositories.OfferRepository
	chatRepo      repositories.ChatRepository
	uow           repositories.UnitOfWork
	notifications NotificationService
	publisher     Publisher
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	chatRepo repositories.ChatRepository,
	uow repositories.UnitOfWork,
	notifications NotificationService,
	publisher Publisher,
) OfferService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &OfferServiceImpl{
		offerRepo:     offerRepo,
		chatRepo:      chatRepo,
		uow:           uow,
		notifications: notifications,
		publisher:     publisher,
	}
}

// CreateOffer - предложение условий внутри диалога
func (s *OfferServiceImpl) CreateOffer(ctx context.Context, senderID string, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	conv, err := s.chatRepo.FindConversationByID(ctx, req.ConversationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !conv.HasParticipant(senderID) {
		return nil, apperrors.NewForbiddenError("offer", "not a conversation participant")
	}
	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("offer", "deadline is in the past")
	}

	offer := &models.Offer{
		ConversationID: req.ConversationID,
		SenderID:       senderID,
		ReceiverID:     conv.OtherParticipant(senderID),
		Title:          req.Title,
		Description:    req.Description,
		Amount:         req.Amount,
		Deadline:       req.Deadline,
		Status:         models.OfferStatusPending,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publishOffer(ctx, offer.ReceiverID, EventNewOffer, offer)
	if err := s.notifications.NotifyNewOffer(ctx, offer.ReceiverID, senderID, offer.ID); err != nil {
		logger.CtxWarn(ctx, "offer notification failed", "offer_id", offer.ID, "error", err)
	}
	return s.toResponse(offer), nil
}

// RespondOffer - принятие или отклонение предложения получателем
func (s *OfferServiceImpl) RespondOffer(ctx context.Context, userID, offerID string, req *dto.RespondOfferRequest) (*dto.OfferResponse, error) {
	offer, err := s.findOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.ReceiverID != userID {
		return nil, apperrors.NewForbiddenError("offer", "only the receiver can respond")
	}
	if !offer.IsPending() {
		return nil, apperrors.ErrOfferNotPending
	}

	now := time.Now()
	offer.RespondedAt = &now
	if req.Accept {
		offer.Status = models.OfferStatusAccepted
	} else {
		offer.Status = models.OfferStatusRejected
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publishOffer(ctx, offer.SenderID, EventOfferUpdated, offer)
	if err := s.notifications.NotifyOfferUpdated(ctx, offer.SenderID, offer.ID, offer.Status); err != nil {
		logger.CtxWarn(ctx, "offer update notification failed", "offer_id", offer.ID, "error", err)
	}
	return s.toResponse(offer), nil
}

// CounterOffer - контр-предложение: исходное переходит в countered,
// новое создается в обратном направлении и ссылается на исходное.
// Обе записи меняются в одной транзакции.
func (s *OfferServiceImpl) CounterOffer(ctx context.Context, userID, offerID string, req *dto.CounterOfferRequest) (*dto.OfferResponse, error) {
	var counter *models.Offer

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		offer, err := s.findOffer(txCtx, offerID)
		if err != nil {
			return err
		}
		if offer.ReceiverID != userID {
			return apperrors.NewForbiddenError("offer", "only the receiver can counter")
		}
		if !offer.IsPending() {
			return apperrors.ErrOfferNotPending
		}
		if req.Deadline != nil && req.Deadline.Before(time.Now()) {
			return apperrors.NewBadRequestError("offer", "deadline is in the past")
		}

		now := time.Now()
		offer.Status = models.OfferStatusCountered
		offer.RespondedAt = &now
		if err := s.offerRepo.Update(txCtx, offer); err != nil {
			return apperrors.InternalError(err)
		}

		counter = &models.Offer{
			ConversationID: offer.ConversationID,
			SenderID:       userID,
			ReceiverID:     offer.SenderID,
			Title:          req.Title,
			Description:    req.Description,
			Amount:         req.Amount,
			Deadline:       req.Deadline,
			Status:         models.OfferStatusPending,
			CounterOfferID: &offer.ID,
		}
		if err := s.offerRepo.Create(txCtx, counter); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOffer(ctx, counter.ReceiverID, EventNewOffer, counter)
	if err := s.notifications.NotifyNewOffer(ctx, counter.ReceiverID, userID, counter.ID); err != nil {
		logger.CtxWarn(ctx, "counter offer notification failed", "offer_id", counter.ID, "error", err)
	}
	return s.toResponse(counter), nil
}

func (s *OfferServiceImpl) GetOffer(ctx context.Context, userID, offerID string) (*dto.OfferResponse, error) {
	offer, err := s.findOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.SenderID != userID && offer.ReceiverID != userID {
		return nil, apperrors.NewForbiddenError("offer", "not your offer")
	}
	return s.toResponse(offer), nil
}

func (s *OfferServiceImpl) ListConversationOffers(ctx context.Context, userID, conversationID string) ([]dto.OfferResponse, error) {
	conv, err := s.chatRepo.FindConversationByID(ctx, conversationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.NewForbiddenError("offer", "not a conversation participant")
	}

	offers, err := s.offerRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		items = append(items, *s.toResponse(&offers[i]))
	}
	return items, nil
}

func (s *OfferServiceImpl) ListMyOffers(ctx context.Context, userID string, p dto.Pagination) (*dto.OfferListResponse, error) {
	offers, total, err := s.offerRepo.ListByUser(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		items = append(items, *s.toResponse(&offers[i]))
	}
	return &dto.OfferListResponse{Offers: items, Meta: dto.NewListMeta(total, p)}, nil
}

func (s *OfferServiceImpl) findOffer(ctx context.Context, offerID string) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOfferNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return offer, nil
}

func (s *OfferServiceImpl) publishOffer(ctx context.Context, userID, event string, offer *models.Offer) {
	if err := s.publisher.Publish(userID, event, s.toResponse(offer)); err != nil {
		logger.CtxWarn(ctx, "realtime offer delivery failed", "offer_id", offer.ID, "error", err)
	}
}

func (s *OfferServiceImpl) toResponse(o *models.Offer) *dto.OfferResponse {
	return &dto.OfferResponse{
		ID:             o.ID,
		ConversationID: o.ConversationID,
		SenderID:       o.SenderID,
		ReceiverID:     o.ReceiverID,
		Title:          o.Title,
		Description:    o.Description,
		Amount:         o.Amount,
		Deadline:       o.Deadline,
		Status:         o.Status,
		CounterOfferID: o.CounterOfferID,
		RespondedAt:    o.RespondedAt,
		CreatedAt:      o.CreatedAt,
	}
}

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

type PromotionService interface {
	CreatePromotion(ctx context.Context, brandID string, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error)
	UpdatePromotion(ctx context.Context, brandID, promotionID string, req *dto.UpdatePromotionRequest) (*dto.PromotionResponse, error)
	PublishPromotion(ctx context.Context, brandID, promotionID string) (*dto.PromotionResponse, error)
	ClosePromotion(ctx context.Context, brandID, promotionID string) (*dto.PromotionResponse, error)
	GetPromotion(ctx context.Context, promotionID string) (*dto.PromotionResponse, error)
	SearchPromotions(ctx context.Context, criteria dto.PromotionSearchCriteria) (*dto.PromotionListResponse, error)
	ListBrandPromotions(ctx context.Context, brandID string, p dto.Pagination) (*dto.PromotionListResponse, error)

	// Applications
	Apply(ctx context.Context, creatorID, promotionID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	WithdrawApplication(ctx context.Context, creatorID, applicationID string) error
	DecideApplication(ctx context.Context, brandID, applicationID string, accept bool) (*dto.ApplicationResponse, error)
	ListPromotionApplications(ctx context.Context, brandID, promotionID string, p dto.Pagination) (*dto.ApplicationListResponse, error)
	ListMyApplications(ctx context.Context, creatorID string, p dto.Pagination) (*dto.ApplicationListResponse, error)

	// CloseExpiredPromotions вызывается фоновым воркером
	CloseExpiredPromotions(ctx context.Context) (int, error)
}

type PromotionServiceImpl struct {
	promotionRepo   repositories.PromotionRepository
	applicationRepo repositories.ApplicationRepository
	profileRepo     repositories.ProfileRepository
	notifications   NotificationService
}

func NewPromotionService(
	promotionRepo repositories.PromotionRepository,
	applicationRepo repositories.ApplicationRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
) PromotionService {
	return &PromotionServiceImpl{
		promotionRepo:   promotionRepo,
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		notifications:   notifications,
	}
}

func (s *PromotionServiceImpl) CreatePromotion(ctx context.Context, brandID string, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("promotion", "deadline is in the past")
	}

	promotion := &models.Promotion{
		BrandID:      brandID,
		Title:        req.Title,
		Description:  req.Description,
		Categories:   marshalJSONList(req.Categories),
		Platforms:    marshalJSONList(req.Platforms),
		Budget:       req.Budget,
		MinFollowers: req.MinFollowers,
		City:         req.City,
		Status:       models.PromotionStatusDraft,
		Deadline:     req.Deadline,
	}
	if req.Publish {
		promotion.Status = models.PromotionStatusActive
	}

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(promotion), nil
}

func (s *PromotionServiceImpl) UpdatePromotion(ctx context.Context, brandID, promotionID string, req *dto.UpdatePromotionRequest) (*dto.PromotionResponse, error) {
	promotion, err := s.findOwnedPromotion(ctx, brandID, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion.Status == models.PromotionStatusClosed || promotion.Status == models.PromotionStatusCancelled {
		return nil, apperrors.ErrPromotionClosed
	}

	if req.Title != nil {
		promotion.Title = *req.Title
	}
	if req.Description != nil {
		promotion.Description = *req.Description
	}
	if req.Budget != nil {
		promotion.Budget = *req.Budget
	}
	if req.MinFollowers != nil {
		promotion.MinFollowers = *req.MinFollowers
	}
	if req.City != nil {
		promotion.City = *req.City
	}
	if req.Deadline != nil {
		if req.Deadline.Before(time.Now()) {
			return nil, apperrors.NewBadRequestError("promotion", "deadline is in the past")
		}
		promotion.Deadline = req.Deadline
	}

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(promotion), nil
}

func (s *PromotionServiceImpl) PublishPromotion(ctx context.Context, brandID, promotionID string) (*dto.PromotionResponse, error) {
	promotion, err := s.findOwnedPromotion(ctx, brandID, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion.Status != models.PromotionStatusDraft {
		return nil, apperrors.NewConflictError("promotion", "only draft promotions can be published")
	}

	promotion.Status = models.PromotionStatusActive
	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(promotion), nil
}

func (s *PromotionServiceImpl) ClosePromotion(ctx context.Context, brandID, promotionID string) (*dto.PromotionResponse, error) {
	promotion, err := s.findOwnedPromotion(ctx, brandID, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion.Status != models.PromotionStatusActive && promotion.Status != models.PromotionStatusDraft {
		return nil, apperrors.ErrPromotionClosed
	}

	now := time.Now()
	promotion.Status = models.PromotionStatusClosed
	promotion.ClosedAt = &now
	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(promotion), nil
}

func (s *PromotionServiceImpl) GetPromotion(ctx context.Context, promotionID string) (*dto.PromotionResponse, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, promotionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPromotionNotFound) {
			return nil, apperrors.ErrPromotionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Просмотр карточки считается best-effort
	if err := s.promotionRepo.IncrementViews(ctx, promotionID); err != nil {
		logger.CtxWarn(ctx, "promotion view count failed", "promotion_id", promotionID, "error", err)
	} else {
		promotion.Views++
	}
	return s.toResponse(promotion), nil
}

func (s *PromotionServiceImpl) SearchPromotions(ctx context.Context, criteria dto.PromotionSearchCriteria) (*dto.PromotionListResponse, error) {
	promotions, total, err := s.promotionRepo.List(ctx, repositories.PromotionFilter{
		Status:       models.PromotionStatusActive,
		Category:     criteria.Category,
		Platform:     criteria.Platform,
		City:         criteria.City,
		MinFollowers: criteria.MinFollowers,
		Page:         criteria.Page,
		PageSize:     criteria.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toListResponse(promotions, total, criteria.Pagination), nil
}

func (s *PromotionServiceImpl) ListBrandPromotions(ctx context.Context, brandID string, p dto.Pagination) (*dto.PromotionListResponse, error) {
	promotions, total, err := s.promotionRepo.List(ctx, repositories.PromotionFilter{
		BrandID:  brandID,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toListResponse(promotions, total, p), nil
}

// ---------------- Applications ----------------

// Apply - отклик креатора на активную кампанию
func (s *PromotionServiceImpl) Apply(ctx context.Context, creatorID, promotionID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, promotionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPromotionNotFound) {
			return nil, apperrors.ErrPromotionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !promotion.IsOpen() {
		return nil, apperrors.ErrPromotionClosed
	}
	if promotion.BrandID == creatorID {
		return nil, apperrors.NewForbiddenError("application", "cannot apply to own promotion")
	}

	if promotion.MinFollowers > 0 {
		profile, err := s.profileRepo.FindCreatorByUserID(ctx, creatorID)
		if err != nil || profile.Followers < promotion.MinFollowers {
			return nil, apperrors.NewForbiddenError("application", "creator does not meet follower requirement")
		}
	}

	application := &models.PromotionApplication{
		PromotionID:   promotionID,
		CreatorID:     creatorID,
		CoverLetter:   req.CoverLetter,
		ProposedPrice: req.ProposedPrice,
		Status:        models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifications.NotifyNewApplication(ctx, promotion.BrandID, promotion.Title, application.ID); err != nil {
		logger.CtxWarn(ctx, "application notification failed", "application_id", application.ID, "error", err)
	}
	return s.toApplicationResponse(application), nil
}

func (s *PromotionServiceImpl) WithdrawApplication(ctx context.Context, creatorID, applicationID string) error {
	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	if application.CreatorID != creatorID {
		return apperrors.NewForbiddenError("application", "not your application")
	}
	if application.Status != models.ApplicationStatusPending {
		return apperrors.NewConflictError("application", "only pending applications can be withdrawn")
	}
	return s.applicationRepo.UpdateStatus(ctx, applicationID, models.ApplicationStatusWithdrawn)
}

// DecideApplication - решение бренда по отклику
func (s *PromotionServiceImpl) DecideApplication(ctx context.Context, brandID, applicationID string, accept bool) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Promotion == nil || application.Promotion.BrandID != brandID {
		return nil, apperrors.NewForbiddenError("application", "not your promotion")
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, apperrors.NewConflictError("application", "application already decided")
	}

	status := models.ApplicationStatusRejected
	if accept {
		status = models.ApplicationStatusAccepted
	}
	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = status

	if err := s.notifications.NotifyApplicationStatus(ctx, application.CreatorID, application.Promotion.Title, status); err != nil {
		logger.CtxWarn(ctx, "application status notification failed", "application_id", applicationID, "error", err)
	}
	return s.toApplicationResponse(application), nil
}

func (s *PromotionServiceImpl) ListPromotionApplications(ctx context.Context, brandID, promotionID string, p dto.Pagination) (*dto.ApplicationListResponse, error) {
	if _, err := s.findOwnedPromotion(ctx, brandID, promotionID); err != nil {
		return nil, err
	}

	applications, total, err := s.applicationRepo.ListByPromotion(ctx, promotionID, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toApplicationListResponse(applications, total, p), nil
}

func (s *PromotionServiceImpl) ListMyApplications(ctx context.Context, creatorID string, p dto.Pagination) (*dto.ApplicationListResponse, error) {
	applications, total, err := s.applicationRepo.ListByCreator(ctx, creatorID, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toApplicationListResponse(applications, total, p), nil
}

// CloseExpiredPromotions закрывает активные кампании с истекшим дедлайном.
func (s *PromotionServiceImpl) CloseExpiredPromotions(ctx context.Context) (int, error) {
	closed, err := s.promotionRepo.CloseExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	for i := range closed {
		if err := s.notifications.Notify(ctx, closed[i].BrandID, models.NotificationTypeSystem,
			"Кампания закрыта",
			"Кампания «"+closed[i].Title+"» закрыта по дедлайну", nil); err != nil {
			logger.CtxWarn(ctx, "promotion close notification failed", "promotion_id", closed[i].ID, "error", err)
		}
	}
	return len(closed), nil
}

func (s *PromotionServiceImpl) findOwnedPromotion(ctx context.Context, brandID, promotionID string) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, promotionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPromotionNotFound) {
			return nil, apperrors.ErrPromotionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if promotion.BrandID != brandID {
		return nil, apperrors.NewForbiddenError("promotion", "not your promotion")
	}
	return promotion, nil
}

func (s *PromotionServiceImpl) toResponse(p *models.Promotion) *dto.PromotionResponse {
	return &dto.PromotionResponse{
		ID:           p.ID,
		BrandID:      p.BrandID,
		Title:        p.Title,
		Description:  p.Description,
		Categories:   unmarshalJSONList(p.Categories),
		Platforms:    unmarshalJSONList(p.Platforms),
		Budget:       p.Budget,
		MinFollowers: p.MinFollowers,
		City:         p.City,
		Status:       p.Status,
		Deadline:     p.Deadline,
		Views:        p.Views,
		CreatedAt:    p.CreatedAt,
	}
}

func (s *PromotionServiceImpl) toListResponse(promotions []models.Promotion, total int64, p dto.Pagination) *dto.PromotionListResponse {
	items := make([]dto.PromotionResponse, 0, len(promotions))
	for i := range promotions {
		items = append(items, *s.toResponse(&promotions[i]))
	}
	return &dto.PromotionListResponse{Promotions: items, Meta: dto.NewListMeta(total, p)}
}

func (s *PromotionServiceImpl) toApplicationResponse(a *models.PromotionApplication) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:            a.ID,
		PromotionID:   a.PromotionID,
		CreatorID:     a.CreatorID,
		CoverLetter:   a.CoverLetter,
		ProposedPrice: a.ProposedPrice,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}

func (s *PromotionServiceImpl) toApplicationListResponse(applications []models.PromotionApplication, total int64, p dto.Pagination) *dto.ApplicationListResponse {
	items := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, *s.toApplicationResponse(&applications[i]))
	}
	return &dto.ApplicationListResponse{Applications: items, Meta: dto.NewListMeta(total, p)}
}

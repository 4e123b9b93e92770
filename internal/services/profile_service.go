package services

import (
	"context"
	"encoding/json"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ProfileService interface {
	UpdateCreatorProfile(ctx context.Context, userID string, req *dto.UpdateCreatorProfileRequest) (*dto.CreatorProfileResponse, error)
	UpdateBrandProfile(ctx context.Context, userID string, req *dto.UpdateBrandProfileRequest) (*dto.BrandProfileResponse, error)
	GetCreatorProfile(ctx context.Context, userID string) (*dto.CreatorProfileResponse, error)
	GetBrandProfile(ctx context.Context, userID string) (*dto.BrandProfileResponse, error)
	SearchCreators(ctx context.Context, criteria dto.CreatorSearchCriteria) (*dto.CreatorListResponse, error)

	// Админское управление аккаунтами
	AdminListUsers(ctx context.Context, criteria dto.AdminUserCriteria) (*dto.UserListResponse, error)
	AdminSetUserStatus(ctx context.Context, adminID, userID string, status models.UserStatus) (*dto.UserDTO, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *ProfileServiceImpl) UpdateCreatorProfile(ctx context.Context, userID string, req *dto.UpdateCreatorProfileRequest) (*dto.CreatorProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role != models.UserRoleCreator {
		return nil, apperrors.NewForbiddenError("profile", "only creators have a creator profile")
	}

	profile := &models.CreatorProfile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		City:        req.City,
		Categories:  marshalJSONList(req.Categories),
		Platforms:   marshalJSONList(req.Platforms),
		Followers:   req.Followers,
		RatePerPost: req.RatePerPost,
		IsPublic:    true,
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.profileRepo.UpsertCreatorProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toCreatorResponse(profile, user.IsVerified), nil
}

func (s *ProfileServiceImpl) UpdateBrandProfile(ctx context.Context, userID string, req *dto.UpdateBrandProfileRequest) (*dto.BrandProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role != models.UserRoleBrand {
		return nil, apperrors.NewForbiddenError("profile", "only brands have a brand profile")
	}

	profile := &models.BrandProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Industry:    req.Industry,
		City:        req.City,
		About:       req.About,
	}

	if err := s.profileRepo.UpsertBrandProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toBrandResponse(profile, user.IsVerified), nil
}

func (s *ProfileServiceImpl) GetCreatorProfile(ctx context.Context, userID string) (*dto.CreatorProfileResponse, error) {
	profile, err := s.profileRepo.FindCreatorByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "creator profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	verified := false
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		verified = user.IsVerified
	}
	return s.toCreatorResponse(profile, verified), nil
}

func (s *ProfileServiceImpl) GetBrandProfile(ctx context.Context, userID string) (*dto.BrandProfileResponse, error) {
	profile, err := s.profileRepo.FindBrandByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "brand profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	verified := false
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		verified = user.IsVerified
	}
	return s.toBrandResponse(profile, verified), nil
}

func (s *ProfileServiceImpl) SearchCreators(ctx context.Context, criteria dto.CreatorSearchCriteria) (*dto.CreatorListResponse, error) {
	profiles, total, err := s.profileRepo.ListPublicCreators(ctx, repositories.CreatorFilter{
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

	creators := make([]dto.CreatorProfileResponse, 0, len(profiles))
	for i := range profiles {
		creators = append(creators, *s.toCreatorResponse(&profiles[i], false))
	}

	return &dto.CreatorListResponse{
		Creators: creators,
		Meta:     dto.NewListMeta(total, criteria.Pagination),
	}, nil
}

func (s *ProfileServiceImpl) AdminListUsers(ctx context.Context, criteria dto.AdminUserCriteria) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.List(ctx, repositories.UserFilter{
		Role:     criteria.Role,
		Status:   criteria.Status,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserDTO(&users[i]))
	}
	return &dto.UserListResponse{Users: items, Meta: dto.NewListMeta(total, criteria.Pagination)}, nil
}

// AdminSetUserStatus - блокировка/разблокировка аккаунта админом.
// Suspend и ban сразу сбрасывают все сессии пользователя.
func (s *ProfileServiceImpl) AdminSetUserStatus(ctx context.Context, adminID, userID string, status models.UserStatus) (*dto.UserDTO, error) {
	if adminID == userID {
		return nil, apperrors.NewForbiddenError("user", "cannot change own account status")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role == models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("user", "cannot change status of another admin")
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.Status = status

	if status == models.UserStatusSuspended || status == models.UserStatusBanned {
		if err := s.userRepo.DeleteUserRefreshTokens(ctx, userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	resp := dto.NewUserDTO(user)
	return &resp, nil
}

func (s *ProfileServiceImpl) toCreatorResponse(p *models.CreatorProfile, verified bool) *dto.CreatorProfileResponse {
	return &dto.CreatorProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		City:        p.City,
		Categories:  unmarshalJSONList(p.Categories),
		Platforms:   unmarshalJSONList(p.Platforms),
		Followers:   p.Followers,
		RatePerPost: p.RatePerPost,
		IsPublic:    p.IsPublic,
		IsVerified:  verified,
	}
}

func (s *ProfileServiceImpl) toBrandResponse(p *models.BrandProfile, verified bool) *dto.BrandProfileResponse {
	return &dto.BrandProfileResponse{
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Website:     p.Website,
		Industry:    p.Industry,
		City:        p.City,
		About:       p.About,
		IsVerified:  verified,
	}
}

func marshalJSONList(items []string) datatypes.JSON {
	if len(items) == 0 {
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func unmarshalJSONList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/email"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	uow           repositories.UnitOfWork
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	uow repositories.UnitOfWork,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		uow:           uow,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}
	if req.Role != models.UserRoleCreator && req.Role != models.UserRoleBrand {
		return apperrors.NewBadRequestError("auth", "invalid user role")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Role:              req.Role,
		Status:            models.UserStatusPending,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	// Пользователь и стартовый профиль создаются атомарно
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		switch req.Role {
		case models.UserRoleCreator:
			profile := &models.CreatorProfile{
				UserID:      user.ID,
				DisplayName: req.DisplayName,
				City:        req.City,
				IsPublic:    true,
			}
			if err := s.profileRepo.UpsertCreatorProfile(txCtx, profile); err != nil {
				return apperrors.InternalError(err)
			}
		case models.UserRoleBrand:
			profile := &models.BrandProfile{
				UserID:      user.ID,
				CompanyName: req.CompanyName,
				City:        req.City,
			}
			if err := s.profileRepo.UpsertBrandProfile(txCtx, profile); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.emailProvider.SendVerification(user.Email, verificationToken); err != nil {
		logger.CtxWarn(ctx, "verification email not sent", "user_id", user.ID, "error", err)
	}
	return nil
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := checkAccountAccess(user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken - обновление access token по refresh token с ротацией
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(ctx, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if err := checkAccountAccess(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(ctx, user)
}

// Logout - выход (удаление refresh token)
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

// VerifyEmail - подтверждение email по токену из письма
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if err := s.userRepo.VerifyUser(ctx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return s.userRepo.UpdateStatus(ctx, user.ID, models.UserStatusActive)
}

// RequestPasswordReset - запрос сброса пароля
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		// Не раскрываем существование email
		return nil
	}

	resetToken := generateRandomToken()
	resetTokenExp := time.Now().Add(1 * time.Hour)

	user.ResetToken = resetToken
	user.ResetTokenExp = &resetTokenExp

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendPasswordReset(user.Email, resetToken); err != nil {
		logger.CtxWarn(ctx, "password reset email not sent", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword - установка нового пароля по reset-токену
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.ResetToken = ""
	user.ResetTokenExp = nil

	return s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.UpdatePasswordHash(txCtx, user.ID, hashedPassword); err != nil {
			return apperrors.InternalError(err)
		}
		// Все сессии сбрасываются
		return s.userRepo.DeleteUserRefreshTokens(txCtx, user.ID)
	})
}

// ChangePassword - смена пароля авторизованным пользователем
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	return s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.UpdatePasswordHash(txCtx, userID, hashedPassword); err != nil {
			return apperrors.InternalError(err)
		}
		return s.userRepo.DeleteUserRefreshTokens(txCtx, userID)
	})
}

func checkAccountAccess(user *models.User) error {
	switch user.Status {
	case models.UserStatusBanned:
		return apperrors.ErrUserBanned
	case models.UserStatusSuspended:
		return apperrors.ErrUserSuspended
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     generateRandomToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         dto.NewUserDTO(user),
	}, nil
}

func generateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

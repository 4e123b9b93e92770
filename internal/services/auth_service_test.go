package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerCreator(t *testing.T, env *testEnv, emailAddr string) *models.User {
	t.Helper()
	err := env.services.AuthService.Register(context.Background(), &dto.RegisterRequest{
		Email:       emailAddr,
		Password:    "strongpass123",
		Role:        models.UserRoleCreator,
		DisplayName: "Test Creator",
		City:        "Almaty",
	})
	require.NoError(t, err)

	user, err := env.repos.User.FindByEmail(context.Background(), emailAddr)
	require.NoError(t, err)
	return user
}

func TestRegister_CreatesUserWithProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("reg-%d@test.local", time.Now().UnixNano())

	user := registerCreator(t, env, emailAddr)

	assert.Equal(t, models.UserRoleCreator, user.Role)
	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.VerificationToken)

	profile, err := env.repos.Profile.FindCreatorByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Creator", profile.DisplayName)
	assert.True(t, profile.IsPublic)

	// Письмо подтверждения отправлено на адрес регистрации
	require.Len(t, env.email.Sent, 1)
	assert.Equal(t, []string{emailAddr}, env.email.Sent[0].To)
}

func TestRegister_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("dup-%d@test.local", time.Now().UnixNano())
	registerCreator(t, env, emailAddr)

	err := env.services.AuthService.Register(ctx, &dto.RegisterRequest{
		Email:       emailAddr,
		Password:    "strongpass123",
		Role:        models.UserRoleCreator,
		DisplayName: "Dup",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))

	err = env.services.AuthService.Register(ctx, &dto.RegisterRequest{
		Email:       fmt.Sprintf("weak-%d@test.local", time.Now().UnixNano()),
		Password:    "short",
		Role:        models.UserRoleCreator,
		DisplayName: "Weak",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))

	// Роль admin через регистрацию недоступна
	err = env.services.AuthService.Register(ctx, &dto.RegisterRequest{
		Email:    fmt.Sprintf("admin-%d@test.local", time.Now().UnixNano()),
		Password: "strongpass123",
		Role:     models.UserRoleAdmin,
	})
	require.Error(t, err)
}

func TestVerifyEmail_ActivatesAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("verify-%d@test.local", time.Now().UnixNano())
	user := registerCreator(t, env, emailAddr)

	err := env.services.AuthService.VerifyEmail(ctx, "no-such-token")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))

	require.NoError(t, env.services.AuthService.VerifyEmail(ctx, user.VerificationToken))

	updated, err := env.repos.User.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
	assert.Equal(t, models.UserStatusActive, updated.Status)
}

func TestLogin_And_RefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("login-%d@test.local", time.Now().UnixNano())
	registerCreator(t, env, emailAddr)

	_, err := env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "wrongpass123"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: "nobody@test.local", Password: "whatever123"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	resp, err := env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "strongpass123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, emailAddr, resp.User.Email)

	// Ротация: старый refresh token перестает действовать
	rotated, err := env.services.AuthService.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	_, err = env.services.AuthService.RefreshToken(ctx, resp.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestLogin_BannedAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("banned-%d@test.local", time.Now().UnixNano())
	user := registerCreator(t, env, emailAddr)
	require.NoError(t, env.repos.User.UpdateStatus(ctx, user.ID, models.UserStatusBanned))

	_, err := env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "strongpass123"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUserBanned))
}

func TestLogout_DropsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("logout-%d@test.local", time.Now().UnixNano())
	registerCreator(t, env, emailAddr)

	resp, err := env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "strongpass123"})
	require.NoError(t, err)

	require.NoError(t, env.services.AuthService.Logout(ctx, resp.RefreshToken))

	_, err = env.services.AuthService.RefreshToken(ctx, resp.RefreshToken)
	require.Error(t, err)
}

func TestResetPassword_Flow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("reset-%d@test.local", time.Now().UnixNano())
	user := registerCreator(t, env, emailAddr)

	session, err := env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "strongpass123"})
	require.NoError(t, err)

	// Несуществующий email не раскрывается
	require.NoError(t, env.services.AuthService.RequestPasswordReset(ctx, "ghost@test.local"))

	sentBefore := len(env.email.Sent)
	require.NoError(t, env.services.AuthService.RequestPasswordReset(ctx, emailAddr))
	require.Len(t, env.email.Sent, sentBefore+1)

	updated, err := env.repos.User.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, updated.ResetToken)

	require.NoError(t, env.services.AuthService.ResetPassword(ctx, updated.ResetToken, "newpassword456"))

	// Токен одноразовый, все сессии сброшены
	err = env.services.AuthService.ResetPassword(ctx, updated.ResetToken, "another789pass")
	require.Error(t, err)
	_, err = env.services.AuthService.RefreshToken(ctx, session.RefreshToken)
	require.Error(t, err)

	_, err = env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "strongpass123"})
	require.Error(t, err)
	_, err = env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "newpassword456"})
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emailAddr := fmt.Sprintf("change-%d@test.local", time.Now().UnixNano())
	user := registerCreator(t, env, emailAddr)

	session, err := env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "strongpass123"})
	require.NoError(t, err)

	err = env.services.AuthService.ChangePassword(ctx, user.ID, "wrongcurrent1", "newpassword456")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	require.NoError(t, env.services.AuthService.ChangePassword(ctx, user.ID, "strongpass123", "newpassword456"))

	// Сессии сбрасываются вместе с паролем
	_, err = env.services.AuthService.RefreshToken(ctx, session.RefreshToken)
	require.Error(t, err)

	_, err = env.services.AuthService.Login(ctx, &dto.LoginRequest{Email: emailAddr, Password: "newpassword456"})
	require.NoError(t, err)
}

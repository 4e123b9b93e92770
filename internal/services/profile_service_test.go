package services

import (
	"context"
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCreatorProfile_RoleGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t, models.UserRoleCreator)
	brand := env.seedUser(t, models.UserRoleBrand)

	resp, err := env.services.ProfileService.UpdateCreatorProfile(ctx, creator.ID, &dto.UpdateCreatorProfileRequest{
		DisplayName: "Updated Name",
		Bio:         "lifestyle blogger",
		Followers:   25000,
		Categories:  []string{"fashion", "travel"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", resp.DisplayName)
	assert.Equal(t, 25000, resp.Followers)
	assert.Equal(t, []string{"fashion", "travel"}, resp.Categories)

	_, err = env.services.ProfileService.UpdateCreatorProfile(ctx, brand.ID, &dto.UpdateCreatorProfileRequest{
		DisplayName: "Nope",
	})
	require.Error(t, err)
}

func TestSearchCreators_PublicOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	visible := env.seedUser(t, models.UserRoleCreator)
	hidden := env.seedUser(t, models.UserRoleCreator)

	hiddenProfile, err := env.repos.Profile.FindCreatorByUserID(ctx, hidden.ID)
	require.NoError(t, err)
	hiddenProfile.IsPublic = false
	require.NoError(t, env.repos.Profile.UpsertCreatorProfile(ctx, hiddenProfile))

	resp, err := env.services.ProfileService.SearchCreators(ctx, dto.CreatorSearchCriteria{})
	require.NoError(t, err)
	require.Len(t, resp.Creators, 1)
	assert.Equal(t, visible.ID, resp.Creators[0].UserID)
}

func TestAdminListUsers_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, models.UserRoleCreator)
	env.seedUser(t, models.UserRoleCreator)
	env.seedUser(t, models.UserRoleBrand)

	all, err := env.services.ProfileService.AdminListUsers(ctx, dto.AdminUserCriteria{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Meta.Total)

	creators, err := env.services.ProfileService.AdminListUsers(ctx, dto.AdminUserCriteria{Role: models.UserRoleCreator})
	require.NoError(t, err)
	assert.Equal(t, int64(2), creators.Meta.Total)
	for _, u := range creators.Users {
		assert.Equal(t, models.UserRoleCreator, u.Role)
	}
}

func TestAdminSetUserStatus_BanDropsSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, models.UserRoleAdmin)
	creator := env.seedUser(t, models.UserRoleCreator)

	token := &models.RefreshToken{
		UserID:    creator.ID,
		Token:     "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, env.repos.User.CreateRefreshToken(ctx, token))

	resp, err := env.services.ProfileService.AdminSetUserStatus(ctx, admin.ID, creator.ID, models.UserStatusBanned)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, resp.Status)

	_, err = env.repos.User.FindRefreshToken(ctx, "session-token")
	require.Error(t, err)

	updated, err := env.repos.User.FindByID(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, updated.Status)
}

func TestAdminSetUserStatus_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, models.UserRoleAdmin)
	otherAdmin := env.seedUser(t, models.UserRoleAdmin)

	_, err := env.services.ProfileService.AdminSetUserStatus(ctx, admin.ID, admin.ID, models.UserStatusSuspended)
	require.Error(t, err)

	_, err = env.services.ProfileService.AdminSetUserStatus(ctx, admin.ID, otherAdmin.ID, models.UserStatusBanned)
	require.Error(t, err)

	_, err = env.services.ProfileService.AdminSetUserStatus(ctx, admin.ID, "missing-id", models.UserStatusBanned)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

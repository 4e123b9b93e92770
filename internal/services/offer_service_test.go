package services

import (
	"context"
	"testing"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) seedConversation(t *testing.T, brandID, creatorID string) string {
	t.Helper()
	conv, err := e.services.ChatService.StartConversation(context.Background(), brandID, &dto.StartConversationRequest{
		RecipientID: creatorID,
	})
	require.NoError(t, err)
	return conv.ID
}

func TestCreateOffer_ParticipantsOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)
	stranger := env.seedUser(t, models.UserRoleBrand)
	convID := env.seedConversation(t, brand.ID, creator.ID)

	_, err := env.services.OfferService.CreateOffer(ctx, stranger.ID, &dto.CreateOfferRequest{
		ConversationID: convID,
		Title:          "Story post",
		Amount:         500,
	})
	require.Error(t, err)

	offer, err := env.services.OfferService.CreateOffer(ctx, brand.ID, &dto.CreateOfferRequest{
		ConversationID: convID,
		Title:          "Story post",
		Amount:         500,
	})
	require.NoError(t, err)
	assert.Equal(t, brand.ID, offer.SenderID)
	assert.Equal(t, creator.ID, offer.ReceiverID)
	assert.Equal(t, models.OfferStatusPending, offer.Status)
}

func TestRespondOffer_ReceiverOnlyAndFinal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)
	convID := env.seedConversation(t, brand.ID, creator.ID)

	offer, err := env.services.OfferService.CreateOffer(ctx, brand.ID, &dto.CreateOfferRequest{
		ConversationID: convID,
		Title:          "Reel",
		Amount:         1200,
	})
	require.NoError(t, err)

	// Отправитель не может ответить на собственное предложение
	_, err = env.services.OfferService.RespondOffer(ctx, brand.ID, offer.ID, &dto.RespondOfferRequest{Accept: true})
	require.Error(t, err)

	accepted, err := env.services.OfferService.RespondOffer(ctx, creator.ID, offer.ID, &dto.RespondOfferRequest{Accept: true})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.RespondedAt)

	// Решение окончательное
	_, err = env.services.OfferService.RespondOffer(ctx, creator.ID, offer.ID, &dto.RespondOfferRequest{Accept: false})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrOfferNotPending))
}

func TestCounterOffer_ReversesDirectionAndLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)
	convID := env.seedConversation(t, brand.ID, creator.ID)

	original, err := env.services.OfferService.CreateOffer(ctx, brand.ID, &dto.CreateOfferRequest{
		ConversationID: convID,
		Title:          "Reel for 800",
		Amount:         800,
	})
	require.NoError(t, err)

	counter, err := env.services.OfferService.CounterOffer(ctx, creator.ID, original.ID, &dto.CounterOfferRequest{
		Title:  "Reel for 1200",
		Amount: 1200,
	})
	require.NoError(t, err)

	assert.Equal(t, creator.ID, counter.SenderID)
	assert.Equal(t, brand.ID, counter.ReceiverID)
	assert.Equal(t, models.OfferStatusPending, counter.Status)
	require.NotNil(t, counter.CounterOfferID)
	assert.Equal(t, original.ID, *counter.CounterOfferID)

	// Исходное предложение закрыто контр-предложением
	got, err := env.services.OfferService.GetOffer(ctx, brand.ID, original.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusCountered, got.Status)

	// По закрытому предложению нельзя ни ответить, ни контрить
	_, err = env.services.OfferService.RespondOffer(ctx, creator.ID, original.ID, &dto.RespondOfferRequest{Accept: true})
	require.Error(t, err)
	_, err = env.services.OfferService.CounterOffer(ctx, creator.ID, original.ID, &dto.CounterOfferRequest{Title: "Again", Amount: 1000})
	require.Error(t, err)

	// Бренд может принять контр-предложение
	accepted, err := env.services.OfferService.RespondOffer(ctx, brand.ID, counter.ID, &dto.RespondOfferRequest{Accept: true})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, accepted.Status)
}

func TestListConversationOffers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)
	stranger := env.seedUser(t, models.UserRoleCreator)
	convID := env.seedConversation(t, brand.ID, creator.ID)

	_, err := env.services.OfferService.CreateOffer(ctx, brand.ID, &dto.CreateOfferRequest{
		ConversationID: convID,
		Title:          "First offer",
		Amount:         300,
	})
	require.NoError(t, err)

	offers, err := env.services.OfferService.ListConversationOffers(ctx, creator.ID, convID)
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	_, err = env.services.OfferService.ListConversationOffers(ctx, stranger.ID, convID)
	require.Error(t, err)
}

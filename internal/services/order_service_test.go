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

func TestOrderLifecycle_ApproveSettlesOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	created, err := env.services.OrderService.CreateOrder(ctx, brand.ID, &dto.CreateOrderRequest{
		CreatorID: creator.ID,
		Title:     "Instagram reel",
		Amount:    1500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, created.Status)

	started, err := env.services.OrderService.StartOrder(ctx, creator.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, started.Status)

	submission, err := env.services.OrderService.SubmitWork(ctx, creator.ID, created.ID, &dto.SubmitWorkRequest{
		Files: []string{"https://instagram.com/reel/abc", "https://files.test/raw.mp4"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, submission.Status)
	assert.Equal(t, []string{"https://instagram.com/reel/abc", "https://files.test/raw.mp4"}, submission.Files)
	assert.False(t, submission.PaymentReleased)

	// Файлы сдачи денормализуются в заказ
	delivered, err := env.repos.Order.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `["https://instagram.com/reel/abc","https://files.test/raw.mp4"]`, string(delivered.SubmittedDeliverables))

	reviewed, err := env.services.OrderService.ReviewSubmission(ctx, brand.ID, submission.ID, &dto.ReviewSubmissionRequest{
		Approve: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, reviewed.Status)
	require.NotNil(t, reviewed.SettledAt)

	// Выплата помечена на самой сдаче
	subs, err := env.services.OrderService.ListSubmissions(ctx, brand.ID, created.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, models.ApprovalStatusApproved, subs[0].Status)
	assert.True(t, subs[0].PaymentReleased)

	// Журнал: ровно две строки с общим transaction id
	payments, err := env.repos.Order.ListPaymentsByOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, payments[0].TransactionID, payments[1].TransactionID)

	directions := map[models.PaymentDirection]string{}
	for _, p := range payments {
		directions[p.Direction] = p.UserID
		assert.Equal(t, models.PaymentStatusCompleted, p.Status)
		assert.Equal(t, 1500.0, p.Amount)
	}
	assert.Equal(t, brand.ID, directions[models.PaymentDirectionDebit])
	assert.Equal(t, creator.ID, directions[models.PaymentDirectionCredit])

	balance, err := env.services.OrderService.CreatorBalance(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, balance.Balance)

	// История переходов полная и упорядоченная
	statuses := make([]models.OrderStatus, 0, len(reviewed.StatusHistory))
	for _, entry := range reviewed.StatusHistory {
		statuses = append(statuses, entry.Status)
	}
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusInProgress,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
	}, statuses)
}

func TestReviewSubmission_RejectReturnsOrderToWork(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	order := env.seedOrder(t, brand.ID, creator.ID, 900)
	_, err := env.services.OrderService.StartOrder(ctx, creator.ID, order.ID)
	require.NoError(t, err)
	submission, err := env.services.OrderService.SubmitWork(ctx, creator.ID, order.ID, &dto.SubmitWorkRequest{
		Files: []string{"https://youtube.com/watch?v=x"},
	})
	require.NoError(t, err)

	reviewed, err := env.services.OrderService.ReviewSubmission(ctx, brand.ID, submission.ID, &dto.ReviewSubmissionRequest{
		Approve:    false,
		ReviewNote: "wrong product in frame",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, reviewed.Status)
	assert.Nil(t, reviewed.SettledAt)
	assert.Zero(t, env.countPayments(t, order.ID))

	// Отклоненную сдачу нельзя пересмотреть
	_, err = env.services.OrderService.ReviewSubmission(ctx, brand.ID, submission.ID, &dto.ReviewSubmissionRequest{Approve: true})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSubmissionNotPending))
}

func TestReleasePayment_IdempotentAfterSettlement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	order := env.seedOrder(t, brand.ID, creator.ID, 2000)
	_, err := env.services.OrderService.StartOrder(ctx, creator.ID, order.ID)
	require.NoError(t, err)
	submission, err := env.services.OrderService.SubmitWork(ctx, creator.ID, order.ID, &dto.SubmitWorkRequest{
		Files: []string{"https://tiktok.com/@c/video/1"},
	})
	require.NoError(t, err)
	_, err = env.services.OrderService.ReviewSubmission(ctx, brand.ID, submission.ID, &dto.ReviewSubmissionRequest{Approve: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), env.countPayments(t, order.ID))

	// Повторный запуск расчета не создает новых строк журнала
	resp, err := env.services.OrderService.ReleasePayment(ctx, brand.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, resp.Status)
	assert.NotNil(t, resp.SettledAt)
	assert.Equal(t, int64(2), env.countPayments(t, order.ID))

	balance, err := env.services.OrderService.CreatorBalance(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, balance.Balance)
}

func TestReleasePayment_RequiresApprovedSubmission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	order := env.seedOrder(t, brand.ID, creator.ID, 500)
	_, err := env.services.OrderService.StartOrder(ctx, creator.ID, order.ID)
	require.NoError(t, err)
	_, err = env.services.OrderService.SubmitWork(ctx, creator.ID, order.ID, &dto.SubmitWorkRequest{
		Files: []string{"https://instagram.com/p/1"},
	})
	require.NoError(t, err)

	_, err = env.services.OrderService.ReleasePayment(ctx, brand.ID, order.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSubmissionNotApproved))
	assert.Zero(t, env.countPayments(t, order.ID))
}

func TestOrder_OwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	otherBrand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)
	otherCreator := env.seedUser(t, models.UserRoleCreator)

	order := env.seedOrder(t, brand.ID, creator.ID, 700)

	_, err := env.services.OrderService.StartOrder(ctx, otherCreator.ID, order.ID)
	require.Error(t, err)

	_, err = env.services.OrderService.StartOrder(ctx, creator.ID, order.ID)
	require.NoError(t, err)
	submission, err := env.services.OrderService.SubmitWork(ctx, creator.ID, order.ID, &dto.SubmitWorkRequest{
		Files: []string{"https://instagram.com/p/2"},
	})
	require.NoError(t, err)

	// Чужой бренд не может принять сдачу, состояние не меняется
	_, err = env.services.OrderService.ReviewSubmission(ctx, otherBrand.ID, submission.ID, &dto.ReviewSubmissionRequest{Approve: true})
	require.Error(t, err)
	assert.Zero(t, env.countPayments(t, order.ID))

	current, err := env.services.OrderService.GetOrder(ctx, brand.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, current.Status)

	_, err = env.services.OrderService.GetOrder(ctx, otherBrand.ID, order.ID)
	require.Error(t, err)
}

func TestCancelOrder_BlockedAfterSettlement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	order := env.seedOrder(t, brand.ID, creator.ID, 300)
	_, err := env.services.OrderService.StartOrder(ctx, creator.ID, order.ID)
	require.NoError(t, err)
	submission, err := env.services.OrderService.SubmitWork(ctx, creator.ID, order.ID, &dto.SubmitWorkRequest{
		Files: []string{"https://instagram.com/p/3"},
	})
	require.NoError(t, err)
	_, err = env.services.OrderService.ReviewSubmission(ctx, brand.ID, submission.ID, &dto.ReviewSubmissionRequest{Approve: true})
	require.NoError(t, err)

	_, err = env.services.OrderService.CancelOrder(ctx, brand.ID, order.ID, &dto.CancelOrderRequest{Reason: "changed my mind"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidOrderStatus))
}

func TestCancelOrder_RecordsReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	order := env.seedOrder(t, brand.ID, creator.ID, 300)

	resp, err := env.services.OrderService.CancelOrder(ctx, creator.ID, order.ID, &dto.CancelOrderRequest{Reason: "no capacity this month"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, resp.Status)

	last := resp.StatusHistory[len(resp.StatusHistory)-1]
	assert.Equal(t, models.OrderStatusCancelled, last.Status)
	assert.Equal(t, creator.ID, last.ChangedBy)
	assert.Equal(t, "no capacity this month", last.Note)
}

func TestCreateOrder_FromAcceptedApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	promo, err := env.services.PromotionService.CreatePromotion(ctx, brand.ID, &dto.CreatePromotionRequest{
		Title:   "Summer campaign",
		Budget:  5000,
		Publish: true,
	})
	require.NoError(t, err)

	application, err := env.services.PromotionService.Apply(ctx, creator.ID, promo.ID, &dto.ApplyRequest{})
	require.NoError(t, err)

	// Отклик еще не принят
	_, err = env.services.OrderService.CreateOrder(ctx, brand.ID, &dto.CreateOrderRequest{
		CreatorID:     creator.ID,
		Title:         "Campaign order",
		Amount:        1000,
		ApplicationID: &application.ID,
	})
	require.Error(t, err)

	_, err = env.services.PromotionService.DecideApplication(ctx, brand.ID, application.ID, true)
	require.NoError(t, err)

	created, err := env.services.OrderService.CreateOrder(ctx, brand.ID, &dto.CreateOrderRequest{
		CreatorID:     creator.ID,
		Title:         "Campaign order",
		Amount:        1000,
		ApplicationID: &application.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, created.Status)

	// После расчета заказа отклик закрывается как выполненный
	_, err = env.services.OrderService.StartOrder(ctx, creator.ID, created.ID)
	require.NoError(t, err)
	submission, err := env.services.OrderService.SubmitWork(ctx, creator.ID, created.ID, &dto.SubmitWorkRequest{
		Files:       []string{"https://files.test/campaign.mp4"},
		Description: "done",
	})
	require.NoError(t, err)
	_, err = env.services.OrderService.ReviewSubmission(ctx, brand.ID, submission.ID, &dto.ReviewSubmissionRequest{Approve: true})
	require.NoError(t, err)

	updatedApp, err := env.repos.Application.FindByID(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusCompleted, updatedApp.Status)
}

package services

import (
	"context"
	"time"

	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/metrics"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type OrderService interface {
	CreateOrder(ctx context.Context, brandID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	StartOrder(ctx context.Context, creatorID, orderID string) (*dto.OrderResponse, error)
	SubmitWork(ctx context.Context, creatorID, orderID string, req *dto.SubmitWorkRequest) (*dto.SubmissionResponse, error)
	ReviewSubmission(ctx context.Context, brandID, submissionID string, req *dto.ReviewSubmissionRequest) (*dto.OrderResponse, error)
	ReleasePayment(ctx context.Context, brandID, orderID string) (*dto.OrderResponse, error)
	CancelOrder(ctx context.Context, userID, orderID string, req *dto.CancelOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, userID string, role models.UserRole, criteria dto.OrderSearchCriteria) (*dto.OrderListResponse, error)
	ListSubmissions(ctx context.Context, userID, orderID string) ([]dto.SubmissionResponse, error)
	ListPayments(ctx context.Context, userID string, p dto.Pagination) (*dto.PaymentListResponse, error)
	CreatorBalance(ctx context.Context, creatorID string) (*dto.BalanceResponse, error)
}

type OrderServiceImpl struct {
	orderRepo       repositories.OrderRepository
	applicationRepo repositories.ApplicationRepository
	uow             repositories.UnitOfWork
	notifications   NotificationService
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	applicationRepo repositories.ApplicationRepository,
	uow repositories.UnitOfWork,
	notifications NotificationService,
) OrderService {
	return &OrderServiceImpl{
		orderRepo:       orderRepo,
		applicationRepo: applicationRepo,
		uow:             uow,
		notifications:   notifications,
	}
}

// CreateOrder - создание заказа брендом. Если заказ рождается из отклика,
// отклик должен быть принят и принадлежать тому же креатору.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, brandID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if req.CreatorID == brandID {
		return nil, apperrors.NewBadRequestError("order", "cannot order from yourself")
	}

	order := &models.Order{
		BrandID:       brandID,
		CreatorID:     req.CreatorID,
		ApplicationID: req.ApplicationID,
		Title:         req.Title,
		Description:   req.Description,
		Amount:        req.Amount,
	}

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		if req.ApplicationID != nil {
			application, err := s.applicationRepo.FindByID(txCtx, *req.ApplicationID)
			if err != nil {
				return apperrors.ErrApplicationNotFound
			}
			if application.Promotion == nil || application.Promotion.BrandID != brandID {
				return apperrors.NewForbiddenError("order", "application belongs to another brand")
			}
			if application.CreatorID != req.CreatorID {
				return apperrors.NewBadRequestError("order", "application belongs to another creator")
			}
			if application.Status != models.ApplicationStatusAccepted {
				return apperrors.NewConflictError("order", "application is not accepted")
			}
			order.PromotionID = &application.PromotionID
		}

		if err := order.AppendStatus(models.OrderStatusPending, brandID, "order created"); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, order.CreatorID, order)
	return s.toResponse(order), nil
}

// StartOrder - креатор принимает заказ в работу
func (s *OrderServiceImpl) StartOrder(ctx context.Context, creatorID, orderID string) (*dto.OrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != creatorID {
		return nil, apperrors.NewForbiddenError("order", "not your order")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	if err := order.AppendStatus(models.OrderStatusInProgress, creatorID, "work started"); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyStatus(ctx, order.BrandID, order)
	return s.toResponse(order), nil
}

// SubmitWork - сдача работы креатором
func (s *OrderServiceImpl) SubmitWork(ctx context.Context, creatorID, orderID string, req *dto.SubmitWorkRequest) (*dto.SubmissionResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != creatorID {
		return nil, apperrors.NewForbiddenError("order", "not your order")
	}
	if order.Status != models.OrderStatusInProgress {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	files := marshalJSONList(req.Files)
	submission := &models.WorkSubmission{
		OrderID:     orderID,
		CreatorID:   creatorID,
		Files:       files,
		Description: req.Description,
		Status:      models.ApprovalStatusPending,
	}

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.CreateSubmission(txCtx, submission); err != nil {
			return apperrors.InternalError(err)
		}
		if err := order.AppendStatus(models.OrderStatusDelivered, creatorID, "work submitted"); err != nil {
			return apperrors.InternalError(err)
		}
		order.SubmittedDeliverables = files
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, order.BrandID, order)
	return s.toSubmissionResponse(submission), nil
}

// ReviewSubmission - вердикт бренда по сдаче. Одобрение завершает заказ
// и запускает расчет; отклонение возвращает заказ в работу.
func (s *OrderServiceImpl) ReviewSubmission(ctx context.Context, brandID, submissionID string, req *dto.ReviewSubmissionRequest) (*dto.OrderResponse, error) {
	var order *models.Order

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		submission, err := s.orderRepo.FindSubmissionByID(txCtx, submissionID)
		if err != nil {
			return apperrors.ErrSubmissionNotFound
		}

		order, err = s.orderRepo.FindByIDForUpdate(txCtx, submission.OrderID)
		if err != nil {
			return apperrors.ErrOrderNotFound
		}
		if order.BrandID != brandID {
			return apperrors.NewForbiddenError("order", "not your order")
		}
		if submission.Status != models.ApprovalStatusPending {
			return apperrors.ErrSubmissionNotPending
		}
		if order.Status != models.OrderStatusDelivered {
			return apperrors.ErrInvalidOrderStatus
		}

		now := time.Now()
		submission.ReviewNote = req.ReviewNote
		submission.ReviewedAt = &now

		if !req.Approve {
			submission.Status = models.ApprovalStatusRejected
			if err := s.orderRepo.UpdateSubmission(txCtx, submission); err != nil {
				return apperrors.InternalError(err)
			}
			if err := order.AppendStatus(models.OrderStatusInProgress, brandID, "submission rejected"); err != nil {
				return apperrors.InternalError(err)
			}
			return s.orderRepo.Update(txCtx, order)
		}

		submission.Status = models.ApprovalStatusApproved
		return s.settleOrder(txCtx, order, submission, brandID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, order.CreatorID, order)
	if order.IsSettled() {
		if err := s.notifications.NotifyPaymentReceived(ctx, order.CreatorID, order.ID, order.Amount); err != nil {
			logger.CtxWarn(ctx, "payment notification failed", "order_id", order.ID, "error", err)
		}
	}
	return s.toResponse(order), nil
}

// ReleasePayment - явный запуск расчета брендом. Требует одобренной сдачи.
// Повторный вызов по рассчитанному заказу возвращает текущее состояние,
// новых строк журнала не появляется.
func (s *OrderServiceImpl) ReleasePayment(ctx context.Context, brandID, orderID string) (*dto.OrderResponse, error) {
	var order *models.Order

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return apperrors.ErrOrderNotFound
		}
		if order.BrandID != brandID {
			return apperrors.NewForbiddenError("order", "not your order")
		}
		if order.IsSettled() {
			return nil
		}

		submissions, err := s.orderRepo.ListSubmissionsByOrder(txCtx, orderID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		var approved *models.WorkSubmission
		for i := range submissions {
			if submissions[i].Status == models.ApprovalStatusApproved {
				approved = &submissions[i]
				break
			}
		}
		if approved == nil {
			return apperrors.ErrSubmissionNotApproved
		}

		return s.settleOrder(txCtx, order, approved, brandID)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(order), nil
}

// settleOrder - единственная точка расчета заказа. Вызывается только
// внутри транзакции по заблокированной строке заказа. Идемпотентность
// обеспечивает SettledAt: повторный вызов ничего не пишет.
// Расчет порождает две строки журнала с общим transaction id:
// списание у бренда и начисление креатору.
func (s *OrderServiceImpl) settleOrder(ctx context.Context, order *models.Order, submission *models.WorkSubmission, actorID string) error {
	if order.IsSettled() {
		return nil
	}

	now := time.Now()
	transactionID := uuid.NewString()

	debit := &models.Payment{
		OrderID:       order.ID,
		UserID:        order.BrandID,
		TransactionID: transactionID,
		Amount:        order.Amount,
		Direction:     models.PaymentDirectionDebit,
		Status:        models.PaymentStatusCompleted,
	}
	credit := &models.Payment{
		OrderID:       order.ID,
		UserID:        order.CreatorID,
		TransactionID: transactionID,
		Amount:        order.Amount,
		Direction:     models.PaymentDirectionCredit,
		Status:        models.PaymentStatusCompleted,
	}

	if err := s.orderRepo.CreatePayment(ctx, debit); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.orderRepo.CreatePayment(ctx, credit); err != nil {
		return apperrors.InternalError(err)
	}

	// Сдача, по которой ушла выплата, помечается в той же транзакции
	submission.PaymentReleased = true
	if err := s.orderRepo.UpdateSubmission(ctx, submission); err != nil {
		return apperrors.InternalError(err)
	}

	order.SettledAt = &now
	if err := order.AppendStatus(models.OrderStatusCompleted, actorID, "order settled"); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	// Отклик, породивший заказ, закрывается вместе с ним
	if order.ApplicationID != nil {
		if err := s.applicationRepo.UpdateStatus(ctx, *order.ApplicationID, models.ApplicationStatusCompleted); err != nil {
			return apperrors.InternalError(err)
		}
	}

	m := metrics.Registry(metrics.DefaultNamespace)
	m.OrdersSettled.Inc()
	m.SettledAmount.Add(order.Amount)
	return nil
}

// CancelOrder - отмена заказа любой из сторон до завершения
func (s *OrderServiceImpl) CancelOrder(ctx context.Context, userID, orderID string, req *dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	var order *models.Order

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return apperrors.ErrOrderNotFound
		}
		if order.BrandID != userID && order.CreatorID != userID {
			return apperrors.NewForbiddenError("order", "not your order")
		}
		if order.Status.IsTerminal() {
			return apperrors.ErrInvalidOrderStatus
		}
		if order.IsSettled() {
			return apperrors.ErrOrderAlreadySettled
		}

		note := "order cancelled"
		if req != nil && req.Reason != "" {
			note = req.Reason
		}
		if err := order.AppendStatus(models.OrderStatusCancelled, userID, note); err != nil {
			return apperrors.InternalError(err)
		}
		return s.orderRepo.Update(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	other := order.BrandID
	if userID == order.BrandID {
		other = order.CreatorID
	}
	s.notifyStatus(ctx, other, order)
	return s.toResponse(order), nil
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BrandID != userID && order.CreatorID != userID {
		return nil, apperrors.NewForbiddenError("order", "not your order")
	}
	return s.toResponse(order), nil
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context, userID string, role models.UserRole, criteria dto.OrderSearchCriteria) (*dto.OrderListResponse, error) {
	filter := repositories.OrderFilter{
		Status:   criteria.Status,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	switch role {
	case models.UserRoleBrand:
		filter.BrandID = userID
	case models.UserRoleCreator:
		filter.CreatorID = userID
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *s.toResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Orders: items, Meta: dto.NewListMeta(total, criteria.Pagination)}, nil
}

func (s *OrderServiceImpl) ListSubmissions(ctx context.Context, userID, orderID string) ([]dto.SubmissionResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BrandID != userID && order.CreatorID != userID {
		return nil, apperrors.NewForbiddenError("order", "not your order")
	}

	submissions, err := s.orderRepo.ListSubmissionsByOrder(ctx, orderID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		items = append(items, *s.toSubmissionResponse(&submissions[i]))
	}
	return items, nil
}

func (s *OrderServiceImpl) ListPayments(ctx context.Context, userID string, p dto.Pagination) (*dto.PaymentListResponse, error) {
	payments, total, err := s.orderRepo.ListPaymentsByUser(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		pay := &payments[i]
		items = append(items, dto.PaymentResponse{
			ID:            pay.ID,
			OrderID:       pay.OrderID,
			TransactionID: pay.TransactionID,
			Amount:        pay.Amount,
			Direction:     pay.Direction,
			Status:        pay.Status,
			CreatedAt:     pay.CreatedAt,
		})
	}
	return &dto.PaymentListResponse{Payments: items, Meta: dto.NewListMeta(total, p)}, nil
}

// CreatorBalance - баланс выводится из журнала, изменяемого счетчика нет.
func (s *OrderServiceImpl) CreatorBalance(ctx context.Context, creatorID string) (*dto.BalanceResponse, error) {
	balance, err := s.orderRepo.CreatorBalance(ctx, creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.BalanceResponse{Balance: balance}, nil
}

func (s *OrderServiceImpl) findOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return order, nil
}

func (s *OrderServiceImpl) notifyStatus(ctx context.Context, userID string, order *models.Order) {
	if err := s.notifications.NotifyOrderStatus(ctx, userID, order.ID, order.Status); err != nil {
		logger.CtxWarn(ctx, "order status notification failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderServiceImpl) toResponse(o *models.Order) *dto.OrderResponse {
	history, err := o.History()
	if err != nil {
		history = nil
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		BrandID:       o.BrandID,
		CreatorID:     o.CreatorID,
		ApplicationID: o.ApplicationID,
		Title:         o.Title,
		Description:   o.Description,
		Amount:        o.Amount,
		Status:        o.Status,
		StatusHistory: history,
		SettledAt:     o.SettledAt,
		CreatedAt:     o.CreatedAt,
	}
}

func (s *OrderServiceImpl) toSubmissionResponse(sub *models.WorkSubmission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		ID:              sub.ID,
		OrderID:         sub.OrderID,
		CreatorID:       sub.CreatorID,
		Files:           unmarshalJSONList(sub.Files),
		Status:          sub.Status,
		ReviewNote:      sub.ReviewNote,
		ReviewedAt:      sub.ReviewedAt,
		PaymentReleased: sub.PaymentReleased,
		CreatedAt:       sub.CreatedAt,
	}
}

package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"collabhub_backend/internal/email"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/pkg/apperrors"
)

type VerificationService interface {
	SubmitCodeCheck(ctx context.Context, userID string, req *dto.SubmitCodeCheckRequest) (*dto.VerificationResponse, error)
	VerifyCode(ctx context.Context, userID string, req *dto.VerifyCodeRequest) (*dto.VerificationResponse, error)
	SubmitDocument(ctx context.Context, userID string, req *dto.SubmitDocumentCheckRequest) (*dto.VerificationResponse, error)
	SubmitPayment(ctx context.Context, userID string, req *dto.SubmitPaymentCheckRequest) (*dto.VerificationResponse, error)
	GetMyVerification(ctx context.Context, userID string) (*dto.VerificationResponse, error)

	// Admin operations
	AdminSetCheckStatus(ctx context.Context, adminID, targetUserID string, req *dto.AdminSetCheckStatusRequest) (*dto.VerificationResponse, error)
	AdminList(ctx context.Context, criteria dto.VerificationListCriteria) (*dto.VerificationListResponse, error)
}

type VerificationServiceImpl struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	emailProvider    email.Provider
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) VerificationService {
	return &VerificationServiceImpl{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		emailProvider:    emailProvider,
	}
}

// loadRecord возвращает запись верификации пользователя, создавая пустую
// при первом обращении. Тип записи определяется ролью.
func (s *VerificationServiceImpl) loadRecord(ctx context.Context, userID string) (models.VerificationRecord, models.UserRole, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", apperrors.ErrUserNotFound
	}

	switch user.Role {
	case models.UserRoleCreator:
		record, err := s.verificationRepo.FindCreatorByUserID(ctx, userID)
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			record = &models.CreatorVerification{UserID: userID}
			err = s.verificationRepo.SaveCreator(ctx, record)
		}
		if err != nil {
			return nil, "", apperrors.InternalError(err)
		}
		return record, user.Role, nil
	case models.UserRoleBrand:
		record, err := s.verificationRepo.FindBrandByUserID(ctx, userID)
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			record = &models.BrandVerification{UserID: userID}
			err = s.verificationRepo.SaveBrand(ctx, record)
		}
		if err != nil {
			return nil, "", apperrors.InternalError(err)
		}
		return record, user.Role, nil
	default:
		return nil, "", apperrors.NewForbiddenError("verification", "admins are not verified")
	}
}

func (s *VerificationServiceImpl) save(ctx context.Context, record models.VerificationRecord) error {
	switch v := record.(type) {
	case *models.CreatorVerification:
		return s.verificationRepo.SaveCreator(ctx, v)
	case *models.BrandVerification:
		return s.verificationRepo.SaveBrand(ctx, v)
	default:
		return fmt.Errorf("unknown verification record type %T", record)
	}
}

// SubmitCodeCheck - отправка значения для проверки кодом (email, телефон).
// Генерирует одноразовый код и доставляет его владельцу.
func (s *VerificationServiceImpl) SubmitCodeCheck(ctx context.Context, userID string, req *dto.SubmitCodeCheckRequest) (*dto.VerificationResponse, error) {
	record, role, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := record.Code(req.Kind)
	if check == nil {
		return nil, apperrors.ErrInvalidCheckKind
	}

	now := time.Now()
	check.Value = req.Value
	check.VerificationCode = generateVerificationCode()
	check.CodeSentAt = &now
	check.Status = models.CheckStatusPending
	check.VerifiedAt = nil
	check.RejectionReason = ""

	if err := s.save(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	switch req.Kind {
	case models.CheckKindEmail:
		if err := s.emailProvider.SendVerificationCode(req.Value, check.VerificationCode); err != nil {
			logger.CtxWarn(ctx, "verification code email not sent", "user_id", userID, "error", err)
		}
	case models.CheckKindPhone:
		// SMS-шлюз не подключен, код уходит в лог
		logger.CtxInfo(ctx, "phone verification code issued", "user_id", userID, "phone", req.Value)
	}

	return s.toResponse(record, role), nil
}

// VerifyCode - подтверждение одноразового кода
func (s *VerificationServiceImpl) VerifyCode(ctx context.Context, userID string, req *dto.VerifyCodeRequest) (*dto.VerificationResponse, error) {
	record, role, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := record.Code(req.Kind)
	if check == nil {
		return nil, apperrors.ErrInvalidCheckKind
	}
	// Отклоненная проверка оживает только через новый submit:
	// старый код после решения админа недействителен.
	if check.Status == models.CheckStatusRejected {
		return nil, apperrors.ErrInvalidCode
	}
	if check.VerificationCode == "" || check.VerificationCode != req.Code {
		return nil, apperrors.ErrInvalidCode
	}
	if check.Value != req.Value {
		return nil, apperrors.ErrInvalidCode
	}

	now := time.Now()
	check.Status = models.CheckStatusVerified
	check.VerifiedAt = &now
	check.VerificationCode = ""
	check.RejectionReason = ""

	if err := s.save(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(record, role), nil
}

// SubmitDocument - отправка документа на ручную проверку
func (s *VerificationServiceImpl) SubmitDocument(ctx context.Context, userID string, req *dto.SubmitDocumentCheckRequest) (*dto.VerificationResponse, error) {
	record, role, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := record.Document(req.Kind)
	if check == nil {
		return nil, apperrors.ErrInvalidCheckKind
	}

	check.Number = req.Number
	check.DocumentURL = req.DocumentURL
	check.Status = models.CheckStatusProcessing
	check.VerifiedAt = nil
	check.RejectionReason = ""

	if err := s.save(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(record, role), nil
}

// SubmitPayment - отправка платежного метода на проверку
func (s *VerificationServiceImpl) SubmitPayment(ctx context.Context, userID string, req *dto.SubmitPaymentCheckRequest) (*dto.VerificationResponse, error) {
	record, role, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := record.Payment(req.Kind)
	if check == nil {
		return nil, apperrors.ErrInvalidCheckKind
	}

	check.Handle = req.Handle
	check.Status = models.CheckStatusProcessing
	check.VerifiedAt = nil
	check.RejectionReason = ""

	if err := s.save(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(record, role), nil
}

func (s *VerificationServiceImpl) GetMyVerification(ctx context.Context, userID string) (*dto.VerificationResponse, error) {
	record, role, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(record, role), nil
}

// AdminSetCheckStatus - ручное решение админа по одной проверке
func (s *VerificationServiceImpl) AdminSetCheckStatus(ctx context.Context, adminID, targetUserID string, req *dto.AdminSetCheckStatusRequest) (*dto.VerificationResponse, error) {
	record, role, err := s.loadRecord(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	var sub *models.SubCheck
	if c := record.Code(req.Kind); c != nil {
		sub = &c.SubCheck
		// Выданный ранее код гаснет вместе с решением админа
		c.VerificationCode = ""
	} else if d := record.Document(req.Kind); d != nil {
		sub = &d.SubCheck
	} else if p := record.Payment(req.Kind); p != nil {
		sub = &p.SubCheck
	} else {
		return nil, apperrors.ErrInvalidCheckKind
	}

	now := time.Now()
	sub.Status = req.Status
	if req.Status == models.CheckStatusVerified {
		sub.VerifiedAt = &now
		sub.RejectionReason = ""
	} else {
		sub.VerifiedAt = nil
		sub.RejectionReason = req.RejectionReason
	}
	record.SetReviewer(adminID, now)

	if err := s.save(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(record, role), nil
}

// AdminList - общий список записей верификации в тегированном виде
func (s *VerificationServiceImpl) AdminList(ctx context.Context, criteria dto.VerificationListCriteria) (*dto.VerificationListResponse, error) {
	filter := repositories.VerificationFilter{
		Status:   criteria.Status,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}

	var records []models.VerificationDocument
	var total int64

	if criteria.Role == "" || criteria.Role == models.UserRoleCreator {
		creators, n, err := s.verificationRepo.ListCreators(ctx, filter)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		total += n
		for i := range creators {
			records = append(records, models.NewCreatorVerificationDocument(&creators[i]))
		}
	}
	if criteria.Role == "" || criteria.Role == models.UserRoleBrand {
		brands, n, err := s.verificationRepo.ListBrands(ctx, filter)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		total += n
		for i := range brands {
			records = append(records, models.NewBrandVerificationDocument(&brands[i]))
		}
	}

	return &dto.VerificationListResponse{
		Records: records,
		Meta:    dto.NewListMeta(total, criteria.Pagination),
	}, nil
}

func (s *VerificationServiceImpl) toResponse(record models.VerificationRecord, role models.UserRole) *dto.VerificationResponse {
	var doc models.VerificationDocument
	var createdAt, updatedAt time.Time
	switch v := record.(type) {
	case *models.CreatorVerification:
		doc = models.NewCreatorVerificationDocument(v)
		createdAt, updatedAt = v.CreatedAt, v.UpdatedAt
	case *models.BrandVerification:
		doc = models.NewBrandVerificationDocument(v)
		createdAt, updatedAt = v.CreatedAt, v.UpdatedAt
	}

	checks := make(map[models.CheckKind]dto.CheckView, len(doc.Checks))
	for kind, status := range doc.Checks {
		view := dto.CheckView{Status: status}
		if c := record.Code(kind); c != nil {
			view.VerifiedAt = c.VerifiedAt
			view.RejectionReason = c.RejectionReason
		} else if d := record.Document(kind); d != nil {
			view.VerifiedAt = d.VerifiedAt
			view.RejectionReason = d.RejectionReason
		} else if p := record.Payment(kind); p != nil {
			view.VerifiedAt = p.VerifiedAt
			view.RejectionReason = p.RejectionReason
		}
		checks[kind] = view
	}

	return &dto.VerificationResponse{
		ID:            doc.ID,
		UserID:        doc.UserID,
		Role:          role,
		OverallStatus: doc.OverallStatus,
		Checks:        checks,
		ReviewedAt:    doc.ReviewedAt,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

func generateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

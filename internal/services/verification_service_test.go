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

func TestVerification_CodeCheckFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t, models.UserRoleCreator)

	resp, err := env.services.VerificationService.SubmitCodeCheck(ctx, creator.ID, &dto.SubmitCodeCheckRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CheckStatusPending, resp.Checks[models.CheckKindEmail].Status)
	require.Len(t, env.email.Sent, 1)
	assert.Equal(t, []string{"creator@test.local"}, env.email.Sent[0].To)

	// Код хранится в записи, письмо его только доставляет
	record, err := env.repos.Verification.FindCreatorByUserID(ctx, creator.ID)
	require.NoError(t, err)
	code := record.Email.VerificationCode
	require.Len(t, code, 6)

	_, err = env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
		Code:  "000001",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCode))

	// Верный код, но чужой адрес
	_, err = env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
		Kind:  models.CheckKindEmail,
		Value: "someone-else@test.local",
		Code:  code,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCode))

	verified, err := env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
		Code:  code,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CheckStatusVerified, verified.Checks[models.CheckKindEmail].Status)
	assert.NotNil(t, verified.Checks[models.CheckKindEmail].VerifiedAt)

	// Код одноразовый
	_, err = env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
		Code:  code,
	})
	require.Error(t, err)
}

func TestVerification_CreatorBecomesVerified(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, models.UserRoleAdmin)
	creator := env.seedUser(t, models.UserRoleCreator)

	// Email и телефон через коды
	for _, kind := range []models.CheckKind{models.CheckKindEmail, models.CheckKindPhone} {
		_, err := env.services.VerificationService.SubmitCodeCheck(ctx, creator.ID, &dto.SubmitCodeCheckRequest{
			Kind:  kind,
			Value: "value-" + string(kind),
		})
		require.NoError(t, err)

		record, err := env.repos.Verification.FindCreatorByUserID(ctx, creator.ID)
		require.NoError(t, err)
		_, err = env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
			Kind:  kind,
			Value: "value-" + string(kind),
			Code:  record.Code(kind).VerificationCode,
		})
		require.NoError(t, err)
	}

	// Документы уходят на ручную проверку
	_, err := env.services.VerificationService.SubmitDocument(ctx, creator.ID, &dto.SubmitDocumentCheckRequest{
		Kind:        models.CheckKindPAN,
		Number:      "ABCDE1234F",
		DocumentURL: "https://files.test/pan.pdf",
	})
	require.NoError(t, err)
	_, err = env.services.VerificationService.SubmitDocument(ctx, creator.ID, &dto.SubmitDocumentCheckRequest{
		Kind:        models.CheckKindIDProof,
		Number:      "ID-1",
		DocumentURL: "https://files.test/id.pdf",
	})
	require.NoError(t, err)
	resp, err := env.services.VerificationService.SubmitPayment(ctx, creator.ID, &dto.SubmitPaymentCheckRequest{
		Kind:   models.CheckKindUPI,
		Handle: "creator@upi",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OverallStatusPending, resp.OverallStatus)

	// Админ одобряет документы и платежный метод
	for _, kind := range []models.CheckKind{models.CheckKindPAN, models.CheckKindIDProof, models.CheckKindUPI} {
		resp, err = env.services.VerificationService.AdminSetCheckStatus(ctx, admin.ID, creator.ID, &dto.AdminSetCheckStatusRequest{
			Kind:   kind,
			Status: models.CheckStatusVerified,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, models.OverallStatusVerified, resp.OverallStatus)
	assert.NotNil(t, resp.ReviewedAt)
}

func TestVerification_RejectedIdentityRejectsRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, models.UserRoleAdmin)
	brand := env.seedUser(t, models.UserRoleBrand)

	_, err := env.services.VerificationService.SubmitDocument(ctx, brand.ID, &dto.SubmitDocumentCheckRequest{
		Kind:        models.CheckKindGST,
		Number:      "22AAAAA0000A1Z5",
		DocumentURL: "https://files.test/gst.pdf",
	})
	require.NoError(t, err)

	resp, err := env.services.VerificationService.AdminSetCheckStatus(ctx, admin.ID, brand.ID, &dto.AdminSetCheckStatusRequest{
		Kind:            models.CheckKindGST,
		Status:          models.CheckStatusRejected,
		RejectionReason: "number does not match registry",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OverallStatusRejected, resp.OverallStatus)
	assert.Equal(t, "number does not match registry", resp.Checks[models.CheckKindGST].RejectionReason)
}

func TestVerification_RejectedCodeDoesNotRevive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, models.UserRoleAdmin)
	creator := env.seedUser(t, models.UserRoleCreator)

	_, err := env.services.VerificationService.SubmitCodeCheck(ctx, creator.ID, &dto.SubmitCodeCheckRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
	})
	require.NoError(t, err)

	record, err := env.repos.Verification.FindCreatorByUserID(ctx, creator.ID)
	require.NoError(t, err)
	code := record.Email.VerificationCode
	require.Len(t, code, 6)

	_, err = env.services.VerificationService.AdminSetCheckStatus(ctx, admin.ID, creator.ID, &dto.AdminSetCheckStatusRequest{
		Kind:            models.CheckKindEmail,
		Status:          models.CheckStatusRejected,
		RejectionReason: "mailbox unreachable",
	})
	require.NoError(t, err)

	// Старый код после отклонения мертв
	_, err = env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
		Code:  code,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCode))

	record, err = env.repos.Verification.FindCreatorByUserID(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CheckStatusRejected, record.Email.Status)
	assert.Empty(t, record.Email.VerificationCode)

	// Новый submit выпускает свежий код, и только он работает
	_, err = env.services.VerificationService.SubmitCodeCheck(ctx, creator.ID, &dto.SubmitCodeCheckRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
	})
	require.NoError(t, err)

	record, err = env.repos.Verification.FindCreatorByUserID(ctx, creator.ID)
	require.NoError(t, err)
	fresh := record.Email.VerificationCode
	require.Len(t, fresh, 6)

	verified, err := env.services.VerificationService.VerifyCode(ctx, creator.ID, &dto.VerifyCodeRequest{
		Kind:  models.CheckKindEmail,
		Value: "creator@test.local",
		Code:  fresh,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CheckStatusVerified, verified.Checks[models.CheckKindEmail].Status)
}

func TestVerification_KindMustMatchRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	// id_proof - креаторская проверка, у бренда вместо нее GST
	_, err := env.services.VerificationService.SubmitDocument(ctx, brand.ID, &dto.SubmitDocumentCheckRequest{
		Kind:        models.CheckKindIDProof,
		Number:      "ID-1",
		DocumentURL: "https://files.test/id.pdf",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCheckKind))

	_, err = env.services.VerificationService.SubmitDocument(ctx, creator.ID, &dto.SubmitDocumentCheckRequest{
		Kind:        models.CheckKindGST,
		Number:      "22AAAAA0000A1Z5",
		DocumentURL: "https://files.test/gst.pdf",
	})
	require.Error(t, err)
}

func TestVerification_AdminIsNotVerifiable(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, models.UserRoleAdmin)

	_, err := env.services.VerificationService.GetMyVerification(context.Background(), admin.ID)
	require.Error(t, err)
}

func TestVerification_AdminListMergesRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	brand := env.seedUser(t, models.UserRoleBrand)
	creator := env.seedUser(t, models.UserRoleCreator)

	_, err := env.services.VerificationService.GetMyVerification(ctx, brand.ID)
	require.NoError(t, err)
	_, err = env.services.VerificationService.GetMyVerification(ctx, creator.ID)
	require.NoError(t, err)

	list, err := env.services.VerificationService.AdminList(ctx, dto.VerificationListCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Records, 2)

	kinds := map[models.VerificationDocumentKind]bool{}
	for _, rec := range list.Records {
		kinds[rec.Kind] = true
	}
	assert.True(t, kinds[models.VerificationDocumentCreator])
	assert.True(t, kinds[models.VerificationDocumentBrand])

	onlyBrands, err := env.services.VerificationService.AdminList(ctx, dto.VerificationListCriteria{Role: models.UserRoleBrand})
	require.NoError(t, err)
	require.Len(t, onlyBrands.Records, 1)
	assert.Equal(t, models.VerificationDocumentBrand, onlyBrands.Records[0].Kind)
}

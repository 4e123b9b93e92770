package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldOverallStatus(t *testing.T) {
	v := CheckStatusVerified
	p := CheckStatusPending
	r := CheckStatusRejected
	proc := CheckStatusProcessing

	tests := []struct {
		name     string
		identity []CheckStatus
		payment  []CheckStatus
		want     OverallStatus
	}{
		{"all verified with one payment", []CheckStatus{v, v, v, v}, []CheckStatus{v, p}, OverallStatusVerified},
		{"all verified with both payments", []CheckStatus{v, v, v, v}, []CheckStatus{v, v}, OverallStatusVerified},
		{"identity incomplete", []CheckStatus{v, v, p, v}, []CheckStatus{v, p}, OverallStatusPending},
		{"identity processing", []CheckStatus{v, v, proc, v}, []CheckStatus{v, v}, OverallStatusPending},
		{"no payment verified", []CheckStatus{v, v, v, v}, []CheckStatus{p, p}, OverallStatusPending},
		{"one payment rejected one verified", []CheckStatus{v, v, v, v}, []CheckStatus{r, v}, OverallStatusVerified},
		{"any identity rejected", []CheckStatus{v, r, v, v}, []CheckStatus{v, v}, OverallStatusRejected},
		{"identity rejected wins over payments", []CheckStatus{r, p, p, p}, []CheckStatus{p, p}, OverallStatusRejected},
		{"all payments rejected", []CheckStatus{v, v, v, v}, []CheckStatus{r, r}, OverallStatusRejected},
		{"all payments rejected with pending identity", []CheckStatus{p, p, p, p}, []CheckStatus{r, r}, OverallStatusRejected},
		{"fresh record", []CheckStatus{p, p, p, p}, []CheckStatus{p, p}, OverallStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldOverallStatus(tt.identity, tt.payment))
		})
	}
}

func TestFoldOverallStatus_Idempotent(t *testing.T) {
	identity := []CheckStatus{CheckStatusVerified, CheckStatusVerified, CheckStatusVerified, CheckStatusVerified}
	payment := []CheckStatus{CheckStatusVerified, CheckStatusRejected}

	first := FoldOverallStatus(identity, payment)
	second := FoldOverallStatus(identity, payment)
	assert.Equal(t, first, second)
	assert.Equal(t, OverallStatusVerified, first)
}

func TestCreatorVerification_BeforeSaveRecomputes(t *testing.T) {
	rec := &CreatorVerification{UserID: "u1"}
	rec.Email.Status = CheckStatusVerified
	rec.Phone.Status = CheckStatusVerified
	rec.PAN.Status = CheckStatusVerified
	rec.IDProof.Status = CheckStatusVerified
	rec.UPI.Status = CheckStatusVerified

	// Чужое значение затирается пересчетом
	rec.OverallStatus = OverallStatusRejected
	assert.NoError(t, rec.BeforeSave(nil))
	assert.Equal(t, OverallStatusVerified, rec.OverallStatus)

	rec.IDProof.Status = CheckStatusRejected
	assert.NoError(t, rec.BeforeSave(nil))
	assert.Equal(t, OverallStatusRejected, rec.OverallStatus)
}

func TestBrandVerification_UsesGSTInsteadOfIDProof(t *testing.T) {
	rec := &BrandVerification{UserID: "b1"}

	assert.NotNil(t, rec.Document(CheckKindGST))
	assert.Nil(t, rec.Document(CheckKindIDProof))

	creator := &CreatorVerification{UserID: "c1"}
	assert.Nil(t, creator.Document(CheckKindGST))
	assert.NotNil(t, creator.Document(CheckKindIDProof))
}

func TestVerificationAccessors_RejectWrongKind(t *testing.T) {
	rec := &CreatorVerification{}

	assert.Nil(t, rec.Code(CheckKindPAN))
	assert.Nil(t, rec.Document(CheckKindEmail))
	assert.Nil(t, rec.Payment(CheckKindPhone))
	assert.NotNil(t, rec.Code(CheckKindEmail))
	assert.NotNil(t, rec.Payment(CheckKindUPI))
}

func TestVerificationDocument_Tagging(t *testing.T) {
	creator := &CreatorVerification{UserID: "c1"}
	creator.UPI.Status = CheckStatusVerified
	doc := NewCreatorVerificationDocument(creator)
	assert.Equal(t, VerificationDocumentCreator, doc.Kind)
	assert.Contains(t, doc.Checks, CheckKindIDProof)
	assert.NotContains(t, doc.Checks, CheckKindGST)
	assert.Equal(t, CheckStatusVerified, doc.Checks[CheckKindUPI])

	brand := &BrandVerification{UserID: "b1"}
	brandDoc := NewBrandVerificationDocument(brand)
	assert.Equal(t, VerificationDocumentBrand, brandDoc.Kind)
	assert.Contains(t, brandDoc.Checks, CheckKindGST)
	assert.NotContains(t, brandDoc.Checks, CheckKindIDProof)
}

package services

import (
	"context"
	"testing"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appFixture struct {
	svc       *LoanApplicationService
	users     *fakeUserRepo
	products  *fakeProductRepo
	apps      *fakeAppRepo
	documents *fakeDocRepo
	notices   *fakeNotificationRepo
	mailer    *fakeMailer

	applicant *models.User
	product   *models.LoanProduct
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	f := &appFixture{
		users:     newFakeUserRepo(),
		products:  newFakeProductRepo(),
		apps:      newFakeAppRepo(),
		documents: newFakeDocRepo(),
		notices:   newFakeNotificationRepo(),
		mailer:    &fakeMailer{},
	}
	notifier := NewNotificationService(f.notices, f.users)
	f.svc = NewLoanApplicationService(f.apps, f.products, f.users, f.documents, notifier, f.mailer)

	roleName := "USER"
	f.applicant = &models.User{
		Email:         "bob@example.com",
		AccountStatus: models.AccountStatusActive,
		RoleName:      &roleName,
	}
	require.NoError(t, f.users.Create(context.Background(), f.applicant))

	f.product = &models.LoanProduct{
		Name:              "Personal Loan",
		InterestRate:      12.5,
		MinAmount:         10_000,
		MaxAmount:         500_000,
		MinTerm:           6,
		MaxTerm:           60,
		Status:            models.LoanProductStatusActive,
		RequiredDocuments: "ID_CARD PAYSLIP",
	}
	require.NoError(t, f.products.Create(context.Background(), f.product))

	return f
}

func (f *appFixture) applicantPrincipal() *domain.Principal {
	return domain.PrincipalFromScope(f.applicant.Email, "ROLE_USER", "jti-user")
}

func adminPrincipal() *domain.Principal {
	return domain.PrincipalFromScope("admin@example.com", "ROLE_ADMIN APPROVE_LOAN", "jti-admin")
}

func (f *appFixture) createApplication(t *testing.T) *models.LoanApplicationResponse {
	t.Helper()
	application, err := f.svc.CreateApplication(context.Background(), f.applicantPrincipal(), &CreateApplicationInput{
		ProductID:       f.product.ID,
		RequestedAmount: 100_000,
		RequestedTerm:   24,
		PersonalInfo:    "Bob, salaried, 8 years at current employer",
	})
	require.NoError(t, err)
	return application
}

func TestLoanApplicationService_Create(t *testing.T) {
	f := newAppFixture(t)

	application := f.createApplication(t)
	assert.Equal(t, models.ApplicationStatusNew, application.Status)
	assert.Equal(t, f.applicant.ID, application.UserID)
	assert.Zero(t, application.DisbursedAmount)
}

func TestLoanApplicationService_Create_Validation(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	principal := f.applicantPrincipal()

	_, err := f.svc.CreateApplication(ctx, principal, &CreateApplicationInput{
		ProductID: 99, RequestedAmount: 100_000, RequestedTerm: 24, PersonalInfo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrLoanProductNotFound)

	_, err = f.svc.CreateApplication(ctx, principal, &CreateApplicationInput{
		ProductID: f.product.ID, RequestedAmount: 5_000, RequestedTerm: 24, PersonalInfo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidApplicationAmount)

	_, err = f.svc.CreateApplication(ctx, principal, &CreateApplicationInput{
		ProductID: f.product.ID, RequestedAmount: 100_000, RequestedTerm: 120, PersonalInfo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidApplicationTerm)

	_, err = f.svc.CreateApplication(ctx, principal, &CreateApplicationInput{
		ProductID: f.product.ID, RequestedAmount: 100_000, RequestedTerm: 24, PersonalInfo: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidApplicationPersonalInfo)
}

func TestLoanApplicationService_Create_RetiredProduct(t *testing.T) {
	f := newAppFixture(t)
	f.product.Status = models.LoanProductStatusInactive
	require.NoError(t, f.products.Update(context.Background(), f.product))

	_, err := f.svc.CreateApplication(context.Background(), f.applicantPrincipal(), &CreateApplicationInput{
		ProductID: f.product.ID, RequestedAmount: 100_000, RequestedTerm: 24, PersonalInfo: "x",
	})
	assert.ErrorIs(t, err, domain.ErrLoanProductNotFound)
}

func TestLoanApplicationService_Ownership(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	// A different user cannot read someone else's application.
	roleName := "USER"
	other := &models.User{Email: "eve@example.com", AccountStatus: models.AccountStatusActive, RoleName: &roleName}
	require.NoError(t, f.users.Create(ctx, other))
	otherPrincipal := domain.PrincipalFromScope(other.Email, "ROLE_USER", "jti-eve")

	_, err := f.svc.GetApplication(ctx, otherPrincipal, application.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Admins can.
	_, err = f.svc.GetApplication(ctx, adminPrincipal(), application.ID)
	assert.NoError(t, err)

	// A principal whose account vanished reads as missing permission.
	ghost := domain.PrincipalFromScope("ghost@example.com", "ROLE_USER", "jti-ghost")
	_, err = f.svc.GetApplication(ctx, ghost, application.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// So does an ID that does not exist. Only admins learn the row is
	// actually missing.
	_, err = f.svc.GetApplication(ctx, otherPrincipal, 9999)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.svc.GetApplication(ctx, adminPrincipal(), 9999)
	assert.ErrorIs(t, err, domain.ErrLoanApplicationNotFound)
}

func TestLoanApplicationService_Submit(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	submitted, err := f.svc.SubmitApplication(ctx, f.applicantPrincipal(), application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, submitted.Status)

	_, err = f.svc.SubmitApplication(ctx, f.applicantPrincipal(), application.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestLoanApplicationService_UpdateMyApplication(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	updated, err := f.svc.UpdateMyApplication(ctx, f.applicantPrincipal(), application.ID, &UpdateApplicationInput{
		RequestedAmount: 200_000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200_000), updated.RequestedAmount)
	assert.Equal(t, models.ApplicationStatusNew, updated.Status)

	// Revisions must still fit the product.
	_, err = f.svc.UpdateMyApplication(ctx, f.applicantPrincipal(), application.ID, &UpdateApplicationInput{
		RequestedAmount: 900_000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidApplicationAmount)
}

func TestLoanApplicationService_ResubmitAfterMoreInfo(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	_, err := f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: models.ApplicationStatusRequireMoreInfo})
	require.NoError(t, err)

	updated, err := f.svc.UpdateMyApplication(ctx, f.applicantPrincipal(), application.ID, &UpdateApplicationInput{
		PersonalInfo: "Bob, salaried, with the requested employer letter attached",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, updated.Status)
}

func TestLoanApplicationService_UpdateStatus(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	moved, err := f.svc.UpdateStatus(ctx, f.applicantPrincipal(), application.ID, models.ApplicationStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, moved.Status)

	_, err = f.svc.UpdateStatus(ctx, f.applicantPrincipal(), application.ID, "LIMBO")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.svc.UpdateStatus(ctx, f.applicantPrincipal(), application.ID, models.ApplicationStatusFullyDisbursed)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Once rejected, nothing moves through this path, re-rejection included.
	_, err = f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: models.ApplicationStatusRejected})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, f.applicantPrincipal(), application.ID, models.ApplicationStatusPending)
	assert.ErrorIs(t, err, domain.ErrLoanApplicationAlreadyRejected)
	_, err = f.svc.UpdateStatus(ctx, f.applicantPrincipal(), application.ID, models.ApplicationStatusRejected)
	assert.ErrorIs(t, err, domain.ErrLoanApplicationAlreadyRejected)
}

func TestLoanApplicationService_ManageStatus(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	approved, err := f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{
		Status:        models.ApplicationStatusApproved,
		InternalNotes: "Income verified",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, approved.Status)
	assert.Equal(t, "Income verified", approved.InternalNotes)

	// The applicant got an approval notification.
	notifications, _, err := f.notices.ListByUserID(ctx, f.applicant.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeLoanApproval, notifications[0].NotificationType)
}

func TestLoanApplicationService_RejectedIsTerminal(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	rejected, err := f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: models.ApplicationStatusRejected})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)

	notifications, _, err := f.notices.ListByUserID(ctx, f.applicant.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeLoanRejection, notifications[0].NotificationType)

	_, err = f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: models.ApplicationStatusPending})
	assert.ErrorIs(t, err, domain.ErrLoanApplicationAlreadyRejected)
}

func TestLoanApplicationService_ManageStatus_LedgerStatusesBlocked(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	_, err := f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: models.ApplicationStatusPartiallyDisbursed})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: models.ApplicationStatusFullyDisbursed})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.svc.UpdateStatusForManage(ctx, application.ID, &ManageStatusInput{Status: "LIMBO"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestLoanApplicationService_RequiredDocuments(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	statuses, err := f.svc.GetRequiredDocuments(ctx, f.applicantPrincipal(), application.ID)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "ID_CARD", statuses[0].DocumentType)
	assert.Nil(t, statuses[0].FileName)
	assert.Equal(t, "PAYSLIP", statuses[1].DocumentType)
	assert.Nil(t, statuses[1].FileName)

	require.NoError(t, f.documents.Create(ctx, &models.Document{
		ApplicationID: application.ID,
		DocumentType:  "ID_CARD",
		FileName:      "id.pdf",
		StoredName:    "abc.pdf",
	}))

	statuses, err = f.svc.GetRequiredDocuments(ctx, f.applicantPrincipal(), application.ID)
	require.NoError(t, err)
	require.NotNil(t, statuses[0].FileName)
	assert.Equal(t, "id.pdf", *statuses[0].FileName)
	assert.Nil(t, statuses[1].FileName)
}

func TestLoanApplicationService_Delete(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	application := f.createApplication(t)

	// Owners can delete while NEW.
	require.NoError(t, f.svc.DeleteApplication(ctx, f.applicantPrincipal(), application.ID))

	// But not after submission.
	application = f.createApplication(t)
	_, err := f.svc.SubmitApplication(ctx, f.applicantPrincipal(), application.ID)
	require.NoError(t, err)
	err = f.svc.DeleteApplication(ctx, f.applicantPrincipal(), application.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Admins always can.
	assert.NoError(t, f.svc.DeleteApplication(ctx, adminPrincipal(), application.ID))
}

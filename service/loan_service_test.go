package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"microloan/domain"
	"microloan/repository"
)

type loanFixture struct {
	service      *LoanService
	users        *repository.MemoryUserRepository
	loans        *repository.MemoryLoanRepository
	installments *repository.MemoryInstallmentRepository
	cache        *repository.MockCache
	applicant    domain.User
}

func newLoanFixture(t *testing.T) *loanFixture {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	loans := repository.NewMemoryLoanRepository()
	installments := repository.NewMemoryInstallmentRepository()
	documents := repository.NewMemoryDocumentRepository()
	cache := repository.NewMockCache()

	store := NewDocumentStore(t.TempDir(), documents)
	svc := NewLoanService(loans, installments, users, store, cache,
		NewQuoteService(), DefaultLoanRules(), zap.NewNop())

	applicant, err := users.Create(domain.User{
		FullName:   "Asha Rao",
		Email:      "asha@example.com",
		Role:       domain.RoleUser,
		CibilScore: 720,
	})
	require.NoError(t, err)

	return &loanFixture{
		service:      svc,
		users:        users,
		loans:        loans,
		installments: installments,
		cache:        cache,
		applicant:    applicant,
	}
}

func kycUploads() []domain.DocumentUpload {
	return []domain.DocumentUpload{
		{Kind: domain.DocumentAadhar, FileName: "aadhar.png", Data: []byte("aadhar-scan")},
		{Kind: domain.DocumentPAN, FileName: "pan.pdf", Data: []byte("pan-scan")},
	}
}

func validApplication(userID int64) domain.LoanApplication {
	return domain.LoanApplication{
		UserID:     userID,
		Type:       domain.LoanPersonal,
		Amount:     50_000,
		TermMonths: 12,
		Purpose:    "inventory restock",
	}
}

func TestLoanService_Apply(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, loan.Status)
	assert.Equal(t, 2.0, loan.MonthlyRate, "rate comes from the 12-month tier")
	assert.False(t, loan.AppliedDate.IsZero())

	docs, err := f.service.Documents(loan.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestLoanService_ApplyRejectsMissingKYC(t *testing.T) {
	f := newLoanFixture(t)

	onlyAadhar := []domain.DocumentUpload{
		{Kind: domain.DocumentAadhar, FileName: "aadhar.png", Data: []byte("scan")},
	}
	_, err := f.service.Apply(validApplication(f.applicant.ID), onlyAadhar)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoanService_ApplyCibilGate(t *testing.T) {
	f := newLoanFixture(t)

	t.Run("below threshold", func(t *testing.T) {
		require.NoError(t, f.users.UpdateCibil(f.applicant.ID, 600))
		_, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
		assert.ErrorIs(t, err, ErrLowCibil)
	})

	t.Run("unknown score passes", func(t *testing.T) {
		require.NoError(t, f.users.UpdateCibil(f.applicant.ID, 0))
		_, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
		assert.NoError(t, err)
	})
}

func TestLoanService_ApplyUnknownUser(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.service.Apply(validApplication(999), kycUploads())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLoanService_StatusUsesCache(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	loan, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
	require.NoError(t, err)

	first, err := f.service.Status(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, first.Status)

	// Mutate the repository behind the cache's back: the cached copy must
	// still be served until invalidation.
	require.NoError(t, f.loans.UpdateStatus(loan.ID, domain.StatusRejected))
	second, err := f.service.Status(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, second.Status)
}

func TestLoanService_ApproveGeneratesSchedule(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	loan, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(ctx, loan.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)

	schedule, err := f.service.Installments(loan.ID)
	require.NoError(t, err)
	require.Len(t, schedule, loan.TermMonths)
	for _, inst := range schedule {
		assert.False(t, inst.Paid)
		assert.Greater(t, inst.Amount, 0.0)
	}

	// Cache was invalidated, so the fresh status is visible.
	status, err := f.service.Status(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, status.Status)
}

func TestLoanService_UpdateStatusTransitions(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	loan, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
	require.NoError(t, err)

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.service.UpdateStatus(ctx, loan.ID, "ESCALATED")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		_, err := f.service.UpdateStatus(ctx, loan.ID, domain.StatusRejected)
		require.NoError(t, err)

		_, err = f.service.UpdateStatus(ctx, loan.ID, domain.StatusApproved)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestLoanService_OverdueSweepAndPayment(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	loan, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, loan.ID, domain.StatusApproved)
	require.NoError(t, err)

	// Nothing is due yet.
	n, err := f.service.MarkOverdue(time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Two months from now, the first installment is past due.
	n, err = f.service.MarkOverdue(time.Now().AddDate(0, 2, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	schedule, err := f.service.Installments(loan.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.PayInstallment(schedule[0].ID))
	schedule, err = f.service.Installments(loan.ID)
	require.NoError(t, err)
	assert.True(t, schedule[0].Paid)
	assert.False(t, schedule[0].Overdue)
}

func TestLoanService_Stats(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.service.Apply(validApplication(f.applicant.ID), kycUploads())
		require.NoError(t, err)
	}
	_, err := f.service.UpdateStatus(ctx, 1, domain.StatusApproved)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, 2, domain.StatusRejected)
	require.NoError(t, err)

	stats, err := f.service.Stats()
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"microloan/domain"
	"microloan/repository"
)

const loanStatusTTL = 5 * time.Minute

type LoanService struct {
	loans        repository.LoanRepository
	installments repository.InstallmentRepository
	users        repository.UserRepository
	documents    *DocumentStore
	cache        repository.CacheRepository
	quotes       *QuoteService
	rules        LoanRules
	log          *zap.Logger
}

func NewLoanService(
	loans repository.LoanRepository,
	installments repository.InstallmentRepository,
	users repository.UserRepository,
	documents *DocumentStore,
	cache repository.CacheRepository,
	quotes *QuoteService,
	rules LoanRules,
	log *zap.Logger,
) *LoanService {
	return &LoanService{
		loans:        loans,
		installments: installments,
		users:        users,
		documents:    documents,
		cache:        cache,
		quotes:       quotes,
		rules:        rules,
		log:          log,
	}
}

// Apply validates the application, gates on the applicant's CIBIL score,
// stores the KYC documents and creates the loan in PENDING. The monthly
// rate is fixed from the tenure tiers at this point and never changes over
// the life of the loan.
func (s *LoanService) Apply(app domain.LoanApplication, docs []domain.DocumentUpload) (domain.Loan, error) {
	if err := s.rules.ValidateApplication(app); err != nil {
		return domain.Loan{}, err
	}

	user, err := s.users.ByID(app.UserID)
	if err != nil {
		return domain.Loan{}, err
	}
	// A zero score means no bureau record yet; the back-office reviews
	// those manually rather than auto-rejecting.
	if user.CibilScore > 0 && user.CibilScore < s.rules.MinCibil {
		return domain.Loan{}, fmt.Errorf("%w: score %d, minimum %d", ErrLowCibil, user.CibilScore, s.rules.MinCibil)
	}

	if err := requireKYC(docs); err != nil {
		return domain.Loan{}, err
	}

	loan, err := s.loans.Create(domain.Loan{
		UserID:      app.UserID,
		Type:        app.Type,
		Amount:      app.Amount,
		TermMonths:  app.TermMonths,
		MonthlyRate: RateForTerm(app.TermMonths),
		Purpose:     app.Purpose,
		Status:      domain.StatusPending,
		AppliedDate: time.Now(),
	})
	if err != nil {
		return domain.Loan{}, err
	}

	for _, doc := range docs {
		if _, err := s.documents.Save(app.UserID, loan.ID, doc); err != nil {
			return domain.Loan{}, fmt.Errorf("save %s document: %w", doc.Kind, err)
		}
	}

	s.log.Info("loan application received",
		zap.Int64("loanId", loan.ID),
		zap.Int64("userId", loan.UserID),
		zap.Float64("amount", loan.Amount),
		zap.Int("termMonths", loan.TermMonths))
	return loan, nil
}

func requireKYC(docs []domain.DocumentUpload) error {
	var hasAadhar, hasPAN bool
	for _, doc := range docs {
		switch doc.Kind {
		case domain.DocumentAadhar:
			hasAadhar = true
		case domain.DocumentPAN:
			hasPAN = true
		}
	}
	errs := FieldErrors{}
	if !hasAadhar {
		errs["aadhar"] = "aadhar card is required"
	}
	if !hasPAN {
		errs["pan"] = "PAN card is required"
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// Status returns a loan by id, serving repeat polls from the cache.
func (s *LoanService) Status(ctx context.Context, id int64) (domain.Loan, error) {
	key := statusKey(id)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var loan domain.Loan
		if err := json.Unmarshal([]byte(raw), &loan); err == nil {
			return loan, nil
		}
		// Corrupt entry: drop it and fall through to the repository.
		s.cache.Delete(ctx, key)
	}

	loan, err := s.loans.ByID(id)
	if err != nil {
		return domain.Loan{}, err
	}
	if raw, err := json.Marshal(loan); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), loanStatusTTL); err != nil {
			s.log.Warn("cache loan status", zap.Int64("loanId", id), zap.Error(err))
		}
	}
	return loan, nil
}

func statusKey(id int64) string {
	return fmt.Sprintf("loan:status:%d", id)
}

func (s *LoanService) ByUser(userID int64) ([]domain.Loan, error) {
	return s.loans.ByUser(userID)
}

func (s *LoanService) All(status domain.LoanStatus) ([]domain.Loan, error) {
	return s.loans.All(status)
}

func (s *LoanService) Installments(loanID int64) ([]domain.Installment, error) {
	if _, err := s.loans.ByID(loanID); err != nil {
		return nil, err
	}
	return s.installments.ByLoan(loanID)
}

func (s *LoanService) Documents(loanID int64) ([]domain.Document, error) {
	if _, err := s.loans.ByID(loanID); err != nil {
		return nil, err
	}
	return s.documents.ByLoan(loanID)
}

// UpdateStatus moves a loan through PENDING -> APPROVED/REJECTED. Approval
// generates the repayment schedule; both outcomes are terminal.
func (s *LoanService) UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus) (domain.Loan, error) {
	switch status {
	case domain.StatusApproved, domain.StatusRejected:
	default:
		return domain.Loan{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	loan, err := s.loans.ByID(id)
	if err != nil {
		return domain.Loan{}, err
	}
	if loan.Status != domain.StatusPending {
		return domain.Loan{}, fmt.Errorf("%w: loan is %s", ErrInvalidTransition, loan.Status)
	}

	if err := s.loans.UpdateStatus(id, status); err != nil {
		return domain.Loan{}, err
	}
	loan.Status = status

	if status == domain.StatusApproved {
		schedule, err := s.quotes.Schedule(loan.ID, domain.QuoteInput{
			Principal:          loan.Amount,
			TermMonths:         loan.TermMonths,
			MonthlyRatePercent: loan.MonthlyRate,
		}, time.Now())
		if err != nil {
			return domain.Loan{}, fmt.Errorf("generate schedule: %w", err)
		}
		if err := s.installments.CreateBatch(schedule); err != nil {
			return domain.Loan{}, fmt.Errorf("persist schedule: %w", err)
		}
	}

	if err := s.cache.Delete(ctx, statusKey(id)); err != nil {
		s.log.Warn("invalidate loan status", zap.Int64("loanId", id), zap.Error(err))
	}

	s.log.Info("loan status updated", zap.Int64("loanId", id), zap.String("status", string(status)))
	return loan, nil
}

// PayInstallment records a repayment collected out of band.
func (s *LoanService) PayInstallment(id int64) error {
	if err := s.installments.MarkPaid(id); err != nil {
		return err
	}
	s.log.Info("installment paid", zap.Int64("installmentId", id))
	return nil
}

// MarkOverdue flags unpaid installments past due; run daily by the
// scheduler.
func (s *LoanService) MarkOverdue(asOf time.Time) (int64, error) {
	n, err := s.installments.MarkOverdue(asOf)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("installments overdue", zap.Int64("count", n))
	}
	return n, nil
}

// Stats aggregates loan counts for the back-office dashboard.
func (s *LoanService) Stats() (domain.DashboardStats, error) {
	loans, err := s.loans.All("")
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats := domain.DashboardStats{Total: len(loans)}
	for _, loan := range loans {
		switch loan.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

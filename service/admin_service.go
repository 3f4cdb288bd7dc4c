package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"microloan/domain"
	"microloan/repository"
)

// AdminService is the back-office facade: account review, loan decisions,
// CIBIL maintenance.
type AdminService struct {
	users repository.UserRepository
	loans *LoanService
	auth  *UserService
	log   *zap.Logger
}

func NewAdminService(users repository.UserRepository, loans *LoanService, auth *UserService, log *zap.Logger) *AdminService {
	return &AdminService{users: users, loans: loans, auth: auth, log: log}
}

func (s *AdminService) Register(reg domain.Registration) (domain.User, error) {
	return s.auth.RegisterAdmin(reg)
}

// Login authenticates like a user login but only admits ADMIN accounts.
func (s *AdminService) Login(creds domain.Credentials) (domain.LoginResult, error) {
	result, err := s.auth.Login(creds)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if result.User.Role != domain.RoleAdmin {
		return domain.LoginResult{}, ErrInvalidCredentials
	}
	return result, nil
}

func (s *AdminService) Users() ([]domain.User, error) {
	return s.users.All()
}

func (s *AdminService) Loans(status domain.LoanStatus) ([]domain.Loan, error) {
	return s.loans.All(status)
}

func (s *AdminService) UpdateLoanStatus(ctx context.Context, id int64, status domain.LoanStatus) (domain.Loan, error) {
	return s.loans.UpdateStatus(ctx, id, status)
}

func (s *AdminService) UpdateCibil(id int64, score int) (domain.User, error) {
	if score < MinCibil || score > MaxCibil {
		return domain.User{}, fmt.Errorf("%w: cibil score must be between %d and %d", ErrInvalidInput, MinCibil, MaxCibil)
	}
	if err := s.users.UpdateCibil(id, score); err != nil {
		return domain.User{}, err
	}
	s.log.Info("cibil score updated", zap.Int64("userId", id), zap.Int("score", score))
	return s.users.ByID(id)
}

// DeleteUser removes an applicant account. Admin accounts cannot be deleted
// through this path.
func (s *AdminService) DeleteUser(id int64) error {
	user, err := s.users.ByID(id)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return fmt.Errorf("%w: cannot delete admin account", ErrForbidden)
	}
	if err := s.users.Delete(id); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Int64("userId", id))
	return nil
}

func (s *AdminService) Stats() (domain.DashboardStats, error) {
	return s.loans.Stats()
}

func (s *AdminService) PayInstallment(id int64) error {
	return s.loans.PayInstallment(id)
}

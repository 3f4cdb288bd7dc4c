package repository

import "microloan/domain"

type LoanRepository interface {
	Create(loan domain.Loan) (domain.Loan, error)
	ByID(id int64) (domain.Loan, error)
	ByUser(userID int64) ([]domain.Loan, error)
	// All lists loans, newest first, optionally filtered by status.
	All(status domain.LoanStatus) ([]domain.Loan, error)
	UpdateStatus(id int64, status domain.LoanStatus) error
}

package repository

import (
	"time"

	"microloan/domain"
)

type InstallmentRepository interface {
	CreateBatch(installments []domain.Installment) error
	ByLoan(loanID int64) ([]domain.Installment, error)
	MarkPaid(id int64) error
	// MarkOverdue flags unpaid installments due before asOf and returns how
	// many rows changed.
	MarkOverdue(asOf time.Time) (int64, error)
}

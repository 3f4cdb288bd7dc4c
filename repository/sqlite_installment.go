package repository

import (
	"time"

	"microloan/domain"
)

type SQLiteInstallmentRepository struct {
	store *Store
}

func NewSQLiteInstallmentRepository(store *Store) *SQLiteInstallmentRepository {
	return &SQLiteInstallmentRepository{store: store}
}

func (r *SQLiteInstallmentRepository) CreateBatch(installments []domain.Installment) error {
	tx, err := r.store.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO installments
		(loan_id, number, due_date, amount, paid, overdue) VALUES (?,?,?,?,0,0)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, inst := range installments {
		if _, err := stmt.Exec(inst.LoanID, inst.Number, inst.DueDate.Unix(), inst.Amount); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteInstallmentRepository) ByLoan(loanID int64) ([]domain.Installment, error) {
	rows, err := r.store.db.Query(
		`SELECT id, loan_id, number, due_date, amount, paid, overdue
		 FROM installments WHERE loan_id = ? ORDER BY number`, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []domain.Installment
	for rows.Next() {
		var inst domain.Installment
		var dueDate int64
		if err := rows.Scan(&inst.ID, &inst.LoanID, &inst.Number, &dueDate,
			&inst.Amount, &inst.Paid, &inst.Overdue); err != nil {
			return nil, err
		}
		inst.DueDate = time.Unix(dueDate, 0)
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

func (r *SQLiteInstallmentRepository) MarkPaid(id int64) error {
	res, err := r.store.db.Exec(
		`UPDATE installments SET paid = 1, overdue = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *SQLiteInstallmentRepository) MarkOverdue(asOf time.Time) (int64, error) {
	res, err := r.store.db.Exec(
		`UPDATE installments SET overdue = 1 WHERE paid = 0 AND overdue = 0 AND due_date < ?`,
		asOf.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

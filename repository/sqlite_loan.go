package repository

import (
	"database/sql"
	"errors"
	"time"

	"microloan/domain"
)

type SQLiteLoanRepository struct {
	store *Store
}

func NewSQLiteLoanRepository(store *Store) *SQLiteLoanRepository {
	return &SQLiteLoanRepository{store: store}
}

func (r *SQLiteLoanRepository) Create(loan domain.Loan) (domain.Loan, error) {
	if loan.AppliedDate.IsZero() {
		loan.AppliedDate = time.Now()
	}
	res, err := r.store.db.Exec(`INSERT INTO loans
		(user_id, loan_type, amount, term_months, monthly_rate, purpose, status, applied_date)
		VALUES (?,?,?,?,?,?,?,?)`,
		loan.UserID, string(loan.Type), loan.Amount, loan.TermMonths,
		loan.MonthlyRate, loan.Purpose, string(loan.Status), loan.AppliedDate.Unix(),
	)
	if err != nil {
		return domain.Loan{}, err
	}
	loan.ID, err = res.LastInsertId()
	return loan, err
}

const loanColumns = `id, user_id, loan_type, amount, term_months, monthly_rate, purpose, status, applied_date`

func (r *SQLiteLoanRepository) ByID(id int64) (domain.Loan, error) {
	row := r.store.db.QueryRow(`SELECT `+loanColumns+` FROM loans WHERE id = ?`, id)

	var loan domain.Loan
	var appliedDate int64
	err := row.Scan(&loan.ID, &loan.UserID, &loan.Type, &loan.Amount, &loan.TermMonths,
		&loan.MonthlyRate, &loan.Purpose, &loan.Status, &appliedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Loan{}, ErrNotFound
	}
	if err != nil {
		return domain.Loan{}, err
	}
	loan.AppliedDate = time.Unix(appliedDate, 0)
	return loan, nil
}

func (r *SQLiteLoanRepository) ByUser(userID int64) ([]domain.Loan, error) {
	rows, err := r.store.db.Query(
		`SELECT `+loanColumns+` FROM loans WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanLoans(rows)
}

func (r *SQLiteLoanRepository) All(status domain.LoanStatus) ([]domain.Loan, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.store.db.Query(`SELECT ` + loanColumns + ` FROM loans ORDER BY id DESC`)
	} else {
		rows, err = r.store.db.Query(
			`SELECT `+loanColumns+` FROM loans WHERE status = ? ORDER BY id DESC`, string(status))
	}
	if err != nil {
		return nil, err
	}
	return scanLoans(rows)
}

func scanLoans(rows *sql.Rows) ([]domain.Loan, error) {
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var loan domain.Loan
		var appliedDate int64
		if err := rows.Scan(&loan.ID, &loan.UserID, &loan.Type, &loan.Amount, &loan.TermMonths,
			&loan.MonthlyRate, &loan.Purpose, &loan.Status, &appliedDate); err != nil {
			return nil, err
		}
		loan.AppliedDate = time.Unix(appliedDate, 0)
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *SQLiteLoanRepository) UpdateStatus(id int64, status domain.LoanStatus) error {
	res, err := r.store.db.Exec(`UPDATE loans SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

package domain

import "time"

// Installment is one row of a loan's repayment schedule, generated when the
// loan is approved.
type Installment struct {
	ID      int64     `json:"id"`
	LoanID  int64     `json:"loanId"`
	Number  int       `json:"number"`
	DueDate time.Time `json:"dueDate"`
	Amount  float64   `json:"amount"`
	Paid    bool      `json:"paid"`
	Overdue bool      `json:"overdue"`
}

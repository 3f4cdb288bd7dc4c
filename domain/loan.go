package domain

import "time"

type LoanStatus string

const (
	StatusPending  LoanStatus = "PENDING"
	StatusApproved LoanStatus = "APPROVED"
	StatusRejected LoanStatus = "REJECTED"
)

type LoanType string

const (
	LoanPersonal  LoanType = "personal"
	LoanBusiness  LoanType = "business"
	LoanEducation LoanType = "education"
	LoanMedical   LoanType = "medical"
)

type Loan struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Type        LoanType   `json:"loanType"`
	Amount      float64    `json:"amount"`
	TermMonths  int        `json:"duration"`
	MonthlyRate float64    `json:"monthlyRate"`
	Purpose     string     `json:"purpose"`
	Status      LoanStatus `json:"status"`
	AppliedDate time.Time  `json:"appliedDate"`
}

// LoanApplication is the apply-form payload; the monthly rate is not part of
// it because it is derived from the tenure tiers at application time.
type LoanApplication struct {
	UserID     int64
	Type       LoanType
	Amount     float64
	TermMonths int
	Purpose    string
}

type DashboardStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

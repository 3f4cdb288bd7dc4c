package repository

import (
	"sync"
	"time"

	"microloan/domain"
)

// In-memory repositories backing the service tests and sqlite-less runs.

type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]domain.User)}
}

func (r *MemoryUserRepository) Create(user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryUserRepository) ByID(id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryUserRepository) ByEmail(email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (r *MemoryUserRepository) All() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]domain.User, 0, len(r.users))
	for id := int64(1); id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) UpdateCibil(id int64, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.CibilScore = score
	r.users[id] = user
	return nil
}

func (r *MemoryUserRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type MemoryLoanRepository struct {
	mu     sync.RWMutex
	nextID int64
	loans  map[int64]domain.Loan
}

func NewMemoryLoanRepository() *MemoryLoanRepository {
	return &MemoryLoanRepository{loans: make(map[int64]domain.Loan)}
}

func (r *MemoryLoanRepository) Create(loan domain.Loan) (domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	loan.ID = r.nextID
	if loan.AppliedDate.IsZero() {
		loan.AppliedDate = time.Now()
	}
	r.loans[loan.ID] = loan
	return loan, nil
}

func (r *MemoryLoanRepository) ByID(id int64) (domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loan, ok := r.loans[id]
	if !ok {
		return domain.Loan{}, ErrNotFound
	}
	return loan, nil
}

func (r *MemoryLoanRepository) ByUser(userID int64) ([]domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var loans []domain.Loan
	for id := r.nextID; id >= 1; id-- {
		if loan, ok := r.loans[id]; ok && loan.UserID == userID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (r *MemoryLoanRepository) All(status domain.LoanStatus) ([]domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var loans []domain.Loan
	for id := r.nextID; id >= 1; id-- {
		loan, ok := r.loans[id]
		if !ok {
			continue
		}
		if status == "" || loan.Status == status {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (r *MemoryLoanRepository) UpdateStatus(id int64, status domain.LoanStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loan, ok := r.loans[id]
	if !ok {
		return ErrNotFound
	}
	loan.Status = status
	r.loans[id] = loan
	return nil
}

type MemoryDocumentRepository struct {
	mu     sync.RWMutex
	nextID int64
	docs   []domain.Document
}

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{}
}

func (r *MemoryDocumentRepository) Create(doc domain.Document) (domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	doc.ID = r.nextID
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	r.docs = append(r.docs, doc)
	return doc, nil
}

func (r *MemoryDocumentRepository) ByLoan(loanID int64) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var docs []domain.Document
	for _, doc := range r.docs {
		if doc.LoanID == loanID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

type MemoryInstallmentRepository struct {
	mu           sync.RWMutex
	nextID       int64
	installments []domain.Installment
}

func NewMemoryInstallmentRepository() *MemoryInstallmentRepository {
	return &MemoryInstallmentRepository{}
}

func (r *MemoryInstallmentRepository) CreateBatch(installments []domain.Installment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range installments {
		r.nextID++
		inst.ID = r.nextID
		r.installments = append(r.installments, inst)
	}
	return nil
}

func (r *MemoryInstallmentRepository) ByLoan(loanID int64) ([]domain.Installment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var installments []domain.Installment
	for _, inst := range r.installments {
		if inst.LoanID == loanID {
			installments = append(installments, inst)
		}
	}
	return installments, nil
}

func (r *MemoryInstallmentRepository) MarkPaid(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, inst := range r.installments {
		if inst.ID == id {
			r.installments[i].Paid = true
			r.installments[i].Overdue = false
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryInstallmentRepository) MarkOverdue(asOf time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i, inst := range r.installments {
		if !inst.Paid && !inst.Overdue && inst.DueDate.Before(asOf) {
			r.installments[i].Overdue = true
			n++
		}
	}
	return n, nil
}

package repository

import "microloan/domain"

type DocumentRepository interface {
	Create(doc domain.Document) (domain.Document, error)
	ByLoan(loanID int64) ([]domain.Document, error)
}

package repository

import (
	"time"

	"microloan/domain"
)

type SQLiteDocumentRepository struct {
	store *Store
}

func NewSQLiteDocumentRepository(store *Store) *SQLiteDocumentRepository {
	return &SQLiteDocumentRepository{store: store}
}

func (r *SQLiteDocumentRepository) Create(doc domain.Document) (domain.Document, error) {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	res, err := r.store.db.Exec(`INSERT INTO documents
		(user_id, loan_id, kind, file_name, path, uploaded_at)
		VALUES (?,?,?,?,?,?)`,
		doc.UserID, doc.LoanID, string(doc.Kind), doc.FileName, doc.Path, doc.UploadedAt.Unix(),
	)
	if err != nil {
		return domain.Document{}, err
	}
	doc.ID, err = res.LastInsertId()
	return doc, err
}

func (r *SQLiteDocumentRepository) ByLoan(loanID int64) ([]domain.Document, error) {
	rows, err := r.store.db.Query(
		`SELECT id, user_id, loan_id, kind, file_name, path, uploaded_at
		 FROM documents WHERE loan_id = ? ORDER BY id`, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var uploadedAt int64
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.LoanID, &doc.Kind,
			&doc.FileName, &doc.Path, &uploadedAt); err != nil {
			return nil, err
		}
		doc.UploadedAt = time.Unix(uploadedAt, 0)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

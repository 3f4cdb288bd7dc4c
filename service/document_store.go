package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"microloan/domain"
	"microloan/repository"
)

// DocumentStore writes uploaded KYC scans to the upload directory under a
// generated name and records their metadata.
type DocumentStore struct {
	dir  string
	docs repository.DocumentRepository
}

func NewDocumentStore(dir string, docs repository.DocumentRepository) *DocumentStore {
	return &DocumentStore{dir: dir, docs: docs}
}

func (d *DocumentStore) Save(userID, loanID int64, upload domain.DocumentUpload) (domain.Document, error) {
	if len(upload.Data) == 0 {
		return domain.Document{}, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}
	if len(upload.Data) > MaxDocumentBytes {
		return domain.Document{}, fmt.Errorf("%w: document exceeds %d bytes", ErrInvalidInput, MaxDocumentBytes)
	}

	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return domain.Document{}, fmt.Errorf("create upload dir: %w", err)
	}

	// Stored name never derives from user input.
	name := uuid.NewString() + filepath.Ext(upload.FileName)
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, upload.Data, 0o600); err != nil {
		return domain.Document{}, fmt.Errorf("write document: %w", err)
	}

	return d.docs.Create(domain.Document{
		UserID:     userID,
		LoanID:     loanID,
		Kind:       upload.Kind,
		FileName:   upload.FileName,
		Path:       path,
		UploadedAt: time.Now(),
	})
}

func (d *DocumentStore) ByLoan(loanID int64) ([]domain.Document, error) {
	return d.docs.ByLoan(loanID)
}

package domain

import "time"

type DocumentKind string

const (
	DocumentAadhar      DocumentKind = "aadhar"
	DocumentPAN         DocumentKind = "pan"
	DocumentIncomeProof DocumentKind = "incomeProof"
)

// Document records where an uploaded KYC scan ended up on disk.
type Document struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"userId"`
	LoanID     int64        `json:"loanId"`
	Kind       DocumentKind `json:"kind"`
	FileName   string       `json:"fileName"`
	Path       string       `json:"path"`
	UploadedAt time.Time    `json:"uploadedAt"`
}

// DocumentUpload is the in-flight form of a document, before it is written
// to the upload directory.
type DocumentUpload struct {
	Kind     DocumentKind
	FileName string
	Data     []byte
}

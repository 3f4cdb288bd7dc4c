package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"microloan/domain"
	"microloan/service"
)

const maxApplyFormBytes = 20 << 20

type LoanHandler struct {
	loans *service.LoanService
}

func NewLoanHandler(loans *service.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// Apply accepts the multipart apply-loan form: amount, duration, loanType
// and purpose fields plus aadhar, pan and optional incomeProof files. The
// applicant is taken from the bearer token, never from the form.
func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r)
	if !ok {
		writeError(w, service.ErrForbidden)
		return
	}

	if err := r.ParseMultipartForm(maxApplyFormBytes); err != nil {
		writeError(w, fmt.Errorf("%w: invalid multipart form", service.ErrInvalidInput))
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid amount", service.ErrInvalidInput))
		return
	}
	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid duration", service.ErrInvalidInput))
		return
	}

	app := domain.LoanApplication{
		UserID:     claims.UserID,
		Type:       domain.LoanType(r.FormValue("loanType")),
		Amount:     amount,
		TermMonths: duration,
		Purpose:    r.FormValue("purpose"),
	}

	docs, err := collectDocuments(r, map[string]domain.DocumentKind{
		"aadhar":      domain.DocumentAadhar,
		"pan":         domain.DocumentPAN,
		"incomeProof": domain.DocumentIncomeProof,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.loans.Apply(app, docs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]int64{"loanId": loan.ID})
}

func collectDocuments(r *http.Request, fields map[string]domain.DocumentKind) ([]domain.DocumentUpload, error) {
	var docs []domain.DocumentUpload
	for field, kind := range fields {
		file, header, err := r.FormFile(field)
		if err == http.ErrMissingFile {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s upload", service.ErrInvalidInput, field)
		}
		data, err := readUpload(file)
		if err != nil {
			return nil, fmt.Errorf("read %s upload: %w", field, err)
		}
		docs = append(docs, domain.DocumentUpload{
			Kind:     kind,
			FileName: header.Filename,
			Data:     data,
		})
	}
	return docs, nil
}

func readUpload(file multipart.File) ([]byte, error) {
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, service.MaxDocumentBytes+1))
}

func (h *LoanHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.loans.Status(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	claims, _ := ClaimsFrom(r)
	if !canAccessUser(claims, loan.UserID) {
		writeError(w, service.ErrForbidden)
		return
	}
	writeData(w, http.StatusOK, loan)
}

// MyLoans lists the caller's applications, newest first.
func (h *LoanHandler) MyLoans(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r)
	if !ok {
		writeError(w, service.ErrForbidden)
		return
	}

	loans, err := h.loans.ByUser(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, loans)
}

// Installments returns the repayment schedule of an approved loan.
func (h *LoanHandler) Installments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.loans.Status(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	claims, _ := ClaimsFrom(r)
	if !canAccessUser(claims, loan.UserID) {
		writeError(w, service.ErrForbidden)
		return
	}

	installments, err := h.loans.Installments(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, installments)
}

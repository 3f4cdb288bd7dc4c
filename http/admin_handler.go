package http

import (
	"net/http"

	"microloan/domain"
	"microloan/service"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := decodeJSON(r, &reg); err != nil {
		writeError(w, err)
		return
	}

	admin, err := h.admin.Register(reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, admin)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.admin.Login(creds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

// Loans lists all loans, optionally filtered with ?status=PENDING.
func (h *AdminHandler) Loans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.admin.Loans(domain.LoanStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, loans)
}

func (h *AdminHandler) UpdateLoanStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status domain.LoanStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	loan, err := h.admin.UpdateLoanStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, loan)
}

func (h *AdminHandler) UpdateCibil(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		CibilScore int `json:"cibilScore"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.admin.UpdateCibil(id, body.CibilScore)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.admin.DeleteUser(id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// PayInstallment records an EMI collected out of band (cash or bank
// transfer reconciled by the back-office).
func (h *AdminHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.admin.PayInstallment(id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "installment marked paid"})
}

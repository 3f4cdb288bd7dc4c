package http

import (
	"net/http"

	"microloan/domain"
	"microloan/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := decodeJSON(r, &reg); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.users.Login(creds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r)
	if !ok {
		writeError(w, service.ErrForbidden)
		return
	}

	token, err := h.users.Refresh(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"token": token})
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	claims, _ := ClaimsFrom(r)
	if !canAccessUser(claims, id) {
		writeError(w, service.ErrForbidden)
		return
	}

	user, err := h.users.Profile(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *UserHandler) Cibil(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	claims, _ := ClaimsFrom(r)
	if !canAccessUser(claims, id) {
		writeError(w, service.ErrForbidden)
		return
	}

	score, err := h.users.CibilScore(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"cibilScore": score})
}

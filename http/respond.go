// Package http exposes the platform over REST. Every response is wrapped in
// one envelope shape so clients unwrap payloads in exactly one place.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"microloan/auth"
	"microloan/repository"
	"microloan/service"
)

type envelope struct {
	Data   any                 `json:"data,omitempty"`
	Error  string              `json:"error,omitempty"`
	Fields service.FieldErrors `json:"fields,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	env := envelope{Error: err.Error()}
	var fields service.FieldErrors
	if errors.As(err, &fields) {
		env.Fields = fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	json.NewEncoder(w).Encode(env)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", service.ErrInvalidInput)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id", service.ErrInvalidInput)
	}
	return id, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrLowCibil):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

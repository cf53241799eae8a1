package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/logger"
	"petreserve-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the core failure taxonomy onto HTTP status codes. Failures
// keep their specific messages: counter staff need to tell "code expired,
// regenerate" apart from "already completed, check the log".
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCodeNotIssued):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, domain.ErrSubjectUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrHandoverNotVerified),
		errors.Is(err, domain.ErrLegNotScheduled),
		errors.Is(err, domain.ErrWrongReservationState),
		errors.Is(err, domain.ErrPaymentMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		msg = "internal server error"
	}
	respondJSON(w, code, errorResponse{Error: msg})
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

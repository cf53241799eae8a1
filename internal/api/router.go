package api

import (
	"net/http"

	"petreserve-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires the public and staff surfaces. Customer endpoints trust the
// caller-supplied requester identity; staff endpoints require a valid token.
func NewRouter(
	reservationHandler *ReservationHandler,
	handoverHandler *HandoverHandler,
	authHandler *AuthHandler,
	tokens security.TokenManager,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Public endpoints
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations", reservationHandler.ListReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{code}", reservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{code}/cancel", reservationHandler.CancelReservation).Methods("POST")

	// Staff endpoints
	manager := r.PathPrefix("/api/manager").Subrouter()
	manager.Use(StaffAuthMiddleware(tokens))
	manager.HandleFunc("/reservations", reservationHandler.ListForManager).Methods("GET")
	manager.HandleFunc("/reservations/{id}/decision", reservationHandler.Decide).Methods("POST")
	manager.HandleFunc("/reservations/{id}/payment-order", reservationHandler.CreatePaymentOrder).Methods("POST")
	manager.HandleFunc("/reservations/{id}/payment-confirm", reservationHandler.ConfirmPayment).Methods("POST")
	manager.HandleFunc("/reservations/{id}/status", reservationHandler.UpdateStatus).Methods("PATCH")
	manager.HandleFunc("/reservations/{id}/timeline", reservationHandler.GetTimeline).Methods("GET")
	manager.HandleFunc("/reservations/{id}/handover/{leg}/schedule", handoverHandler.Schedule).Methods("POST")
	manager.HandleFunc("/reservations/{id}/handover/{leg}/code", handoverHandler.IssueCode).Methods("POST")
	manager.HandleFunc("/reservations/{id}/handover/{leg}/verify", handoverHandler.Verify).Methods("POST")

	return r
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/service"

	"github.com/gorilla/mux"
)

type HandoverHandler struct {
	svc service.HandoverService
}

func NewHandoverHandler(svc service.HandoverService) *HandoverHandler {
	return &HandoverHandler{svc: svc}
}

func pathLeg(w http.ResponseWriter, r *http.Request) (domain.LegKind, bool) {
	leg := domain.LegKind(mux.Vars(r)["leg"])
	if !domain.ValidLegKind(leg) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "leg must be drop_off or pickup"})
		return "", false
	}
	return leg, true
}

type scheduleRequest struct {
	Window   time.Time `json:"window"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
}

func (h *HandoverHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	leg, ok := pathLeg(w, r)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Window.IsZero() {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "window is required"})
		return
	}

	rv, err := h.svc.Schedule(r.Context(), id, leg, service.ScheduleInput{
		Window:   req.Window,
		Location: req.Location,
		Notes:    req.Notes,
	}, staffActor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

func (h *HandoverHandler) IssueCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	leg, ok := pathLeg(w, r)
	if !ok {
		return
	}

	code, expiresAt, err := h.svc.IssueCode(r.Context(), id, leg, staffActor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	// The plaintext code exists only in this response (and the customer
	// email); it is not re-readable from storage.
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"code":       code,
		"expires_at": expiresAt,
	})
}

type verifyRequest struct {
	Code string `json:"code"`
}

func (h *HandoverHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	leg, ok := pathLeg(w, r)
	if !ok {
		return
	}
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Code) == 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "code is required"})
		return
	}

	rv, err := h.svc.Verify(r.Context(), id, leg, req.Code, staffActor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

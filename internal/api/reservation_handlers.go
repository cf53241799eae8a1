package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"petreserve-backend/internal/domain"
	"petreserve-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReservationHandler struct {
	svc         service.ReservationService
	transitions service.TransitionService
}

func NewReservationHandler(svc service.ReservationService, transitions service.TransitionService) *ReservationHandler {
	return &ReservationHandler{svc: svc, transitions: transitions}
}

type createReservationRequest struct {
	SubjectRef   string `json:"subject_ref"`
	RequesterRef string `json:"requester_ref"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Kind         string `json:"kind"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	Notes        string `json:"notes"`
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.SubjectRef == "" || req.RequesterRef == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "subject_ref and requester_ref are required"})
		return
	}

	rv, err := h.svc.Create(r.Context(), service.CreateReservationInput{
		SubjectRef:   req.SubjectRef,
		RequesterRef: req.RequesterRef,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Kind:         domain.ReservationKind(req.Kind),
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rv)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rv, err := h.svc.GetByCode(r.Context(), code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	requesterRef := r.URL.Query().Get("requester_ref")
	if requesterRef == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "requester_ref is required"})
		return
	}
	status := domain.ReservationStatus(r.URL.Query().Get("status"))
	page, pageSize := pagination(r)

	items, total, err := h.svc.List(r.Context(), requesterRef, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": items,
		"total":        total,
	})
}

type cancelRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	actor := req.Actor
	if actor == "" {
		actor = "customer"
	}
	rv, err := h.svc.CancelByCode(r.Context(), code, actor, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

// --- manager endpoints ---

func (h *ReservationHandler) ListForManager(w http.ResponseWriter, r *http.Request) {
	status := domain.ReservationStatus(r.URL.Query().Get("status"))
	page, pageSize := pagination(r)
	items, total, err := h.svc.ListForManager(r.Context(), status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": items,
		"total":        total,
	})
}

type decideRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

func (h *ReservationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Action != "approve" && req.Action != "reject" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "action must be approve or reject"})
		return
	}
	rv, err := h.svc.Decide(r.Context(), id, req.Action, staffActor(r), req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

type paymentOrderRequest struct {
	ProcessorRef string `json:"processor_ref"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

func (h *ReservationHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req paymentOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ProcessorRef == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "processor_ref is required"})
		return
	}
	rv, err := h.svc.CreatePaymentOrder(r.Context(), id, req.ProcessorRef, req.AmountCents, req.Currency, staffActor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

type paymentConfirmRequest struct {
	ProcessorRef string `json:"processor_ref"`
	AmountCents  int64  `json:"amount_cents"`
}

func (h *ReservationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req paymentConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rv, err := h.svc.ConfirmPayment(r.Context(), id, req.ProcessorRef, req.AmountCents, staffActor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatus lets staff request any transition; the transition authority
// enforces the table and the handover gate regardless of what is asked for.
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rv, err := h.transitions.Apply(r.Context(), id, domain.ReservationStatus(req.Status), staffActor(r), req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.svc.Timeline(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"timeline": entries})
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid reservation id"})
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"reservas/internal/apperrors"
	"reservas/internal/entities"
	"reservas/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArgument("invalid request body"))
		return
	}
	reservation, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Service.ListByUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReactivateUser clears a user's suspension flag; the suspension itself is
// applied by the cancellation flow.
func (h *ReservationHandler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ReactivateUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"reservas/internal/apperrors"
	"reservas/internal/entities"
	"reservas/internal/service"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArgument("invalid request body"))
		return
	}
	vehicle, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.IDResponse{ID: vehicle.ID.Hex()})
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entities.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidArgument("invalid request body"))
		return
	}
	resp, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

package api

import (
	"net/http"
	"strconv"

	"reservas/internal/apperrors"
	"reservas/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

func (h *ReportHandler) MostReservedVehicle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.MostReservedVehicle(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TopCancellingUsers reads the limit query parameter, defaulting to 1 when
// absent.
func (h *ReportHandler) TopCancellingUsers(w http.ResponseWriter, r *http.Request) {
	limit := 1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperrors.InvalidArgument("'limit' must be a positive integer"))
			return
		}
		limit = parsed
	}

	resp, err := h.Service.TopCancellingUsers(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

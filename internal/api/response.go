package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"reservas/internal/apperrors"
)

type errorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// statusForKind is the single place the error-kind contract meets HTTP.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidArgument:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "internal error"}
	status := http.StatusInternalServerError

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status = statusForKind(appErr.Kind)
		resp.Error = appErr.Message
		resp.Details = appErr.Details
	}

	writeJSON(w, status, resp)
}

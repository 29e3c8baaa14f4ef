package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"reservas/internal/apperrors"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind apperrors.Kind
		want int
	}{
		{apperrors.KindInvalidArgument, http.StatusBadRequest},
		{apperrors.KindNotFound, http.StatusNotFound},
		{apperrors.KindForbidden, http.StatusForbidden},
		{apperrors.KindConflict, http.StatusConflict},
		{apperrors.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForKind(tt.kind))
	}
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperrors.Conflict("there are already active reservations for these dates",
		map[string]string{"reservation_id": "abc"}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "there are already active reservations for these dates", body.Error)
	assert.NotNil(t, body.Details)
}

func TestWriteError_PlainErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("driver exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	// raw driver errors are never surfaced to callers
	assert.Equal(t, "internal error", body.Error)
}

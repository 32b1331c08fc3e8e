package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("json encode failed")
	}
}

type errResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps a service error to an HTTP status
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrUnknownMethod):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidParams):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errResponse{Error: err.Error(), Code: models.CodeFor(err)})
}

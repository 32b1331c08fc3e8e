package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/desk-cli/internal/models"
	"github.com/yourusername/desk-cli/internal/server"
)

// maxBodyBytes bounds a command body
const maxBodyBytes = 1 << 20

// Handler serves the HTTP endpoints
type Handler struct {
	svc *server.Service
}

// NewHandler creates a handler over svc
func NewHandler(svc *server.Service) *Handler {
	return &Handler{svc: svc}
}

// Health answers GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Snapshot answers GET /api/snapshot
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Controller().Snapshot())
}

// Methods answers GET /api/methods
func (h *Handler) Methods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Methods)
}

// Command answers POST /api/commands/{method}. The body holds the same
// params the RPC method takes and may be empty.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrInvalidParams, err))
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		writeError(w, fmt.Errorf("%w: body is not valid JSON", models.ErrInvalidParams))
		return
	}

	result, err := h.svc.Handle(r.Context(), method, body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

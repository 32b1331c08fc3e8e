// Package httpapi serves the desktop over HTTP using chi.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/models"
	"github.com/yourusername/desk-cli/internal/server"
	"github.com/yourusername/desk-cli/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// A non-empty token enables Bearer auth on /api. sseHandler, if non-nil, is
// mounted at GET /api/events.
func NewRouter(svc *server.Service, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(token != "", token))

		r.Get("/snapshot", h.Snapshot)
		r.Get("/methods", h.Methods)
		r.Post("/commands/{method}", h.Command)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}

// NewSnapshotBroker returns an SSE broker fed by every snapshot ctrl
// publishes. New clients first receive the current snapshot. Call the
// returned cancel before closing the broker.
func NewSnapshotBroker(ctrl *desktop.Controller) (*sse.Broker, func()) {
	b := sse.NewBroker(func() sse.Event {
		return sse.Event{Type: models.EventSnapshot, Data: ctrl.Snapshot()}
	})
	cancel := ctrl.Subscribe(func(s desktop.Snapshot) {
		b.Publish(sse.Event{Type: models.EventSnapshot, Data: s})
	})
	return b, cancel
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// wsHandler is the signature the hub exposes for upgrading connections.
type wsHandler func(http.ResponseWriter, *http.Request)

// MountRoutes registers all API routes on the given chi router. ws may be
// nil when the progress stream is disabled.
func MountRoutes(r chi.Router, h *Handlers, ws wsHandler) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"service":"casepilot","version":"0.1.0"}`))
		})

		r.Post("/triage", h.TriageText)
		r.Post("/triage/file", h.TriageFile)

		r.Get("/reports", h.ListReports)
		r.Get("/reports/{id}", h.GetReport)

		r.Get("/workers", h.ListWorkers)
	})

	if ws != nil {
		r.Get("/ws", http.HandlerFunc(ws))
	}
}

// Package httpapi exposes the diff engine over HTTP: an on-demand compare
// endpoint for two HTML documents and read access to the report history.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domdiff/internal/store"
)

// Service serves the domdiff HTTP API.
type Service struct {
	st     *store.Store
	logger *slog.Logger
}

// New creates a Service. The store may be nil; history endpoints then
// return 404.
func New(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{st: st, logger: logger}
}

// Router builds the chi router for the API.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/diff", s.handleDiff)
		r.Get("/pages/{page_id}/reports", s.handleReports)
	})

	return r
}

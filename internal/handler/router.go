package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/submitd/internal/submission"
)

// Router assembles the service's HTTP surface: the submission endpoints and a
// health endpoint that runs the given dependency checks.
func Router(p *submission.Pipeline, logger *slog.Logger, checks ...func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", Health(checks...))
	r.Mount("/submissions", NewSubmissionsHandler(p, logger).Routes())

	return r
}

// Health returns a handler reporting 200 when every dependency check passes
// and 503 otherwise.
func Health(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Package api wires services, middleware, and handlers into the HTTP
// surface of the notes server.
package api

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/quillstack/notes-server/internal/api/handlers"
	"github.com/quillstack/notes-server/internal/api/middleware"
	"github.com/quillstack/notes-server/internal/config"
	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/ids"
	"github.com/quillstack/notes-server/internal/domain/notes"
	"github.com/quillstack/notes-server/internal/metrics"
	"github.com/quillstack/notes-server/internal/storage"
	"github.com/rs/zerolog"
)

// NewRouter assembles the full handler chain on top of the given storage
// backend. ready is the readiness probe for /readyz; pass nil for the
// in-memory backend.
func NewRouter(cfg config.Config, logger zerolog.Logger, repo storage.Repository, gen ids.Generator, ready func(context.Context) error) http.Handler {
	recorder := audit.NewRecorder(repo.Audit(), logger)
	notesService := notes.NewService(repo.Notes(), recorder, gen, logger)

	notesHandler := handlers.NewNotesHandler(notesService, cfg.Environment)
	auditHandler := handlers.NewAuditHandler(recorder, cfg.Environment)

	apiKeyAuth := middleware.APIKeyAuth(cfg.Auth.APIKey, cfg.Environment)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(ready))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/v1/notes", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(notesHandler.List),
		http.MethodPost: apiKeyAuth(http.HandlerFunc(notesHandler.Create)),
	}))
	mux.Handle("/api/v1/notes/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(notesHandler.Get),
		http.MethodPatch:  apiKeyAuth(http.HandlerFunc(notesHandler.Update)),
		http.MethodDelete: apiKeyAuth(http.HandlerFunc(notesHandler.Remove)),
	}))
	mux.Handle("/api/v1/notes/{id}/publish", methodMux(map[string]http.Handler{
		http.MethodPost: apiKeyAuth(http.HandlerFunc(notesHandler.Publish)),
	}))
	mux.Handle("/api/v1/audit", methodMux(map[string]http.Handler{
		http.MethodGet: apiKeyAuth(http.HandlerFunc(auditHandler.List)),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}

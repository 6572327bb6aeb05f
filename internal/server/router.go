package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/youngjoone/ai-code-reviewer/internal/server/handler"
	"github.com/youngjoone/ai-code-reviewer/internal/service"
	"github.com/youngjoone/ai-code-reviewer/internal/storage"
)

// requestCeiling caps a whole request including provider retries: the 300s
// call timeout plus two 3s retry delays, with headroom.
const requestCeiling = 310 * time.Second

// NewRouter configures the HTTP router with middleware and API routes.
func NewRouter(ops service.Operations, store storage.RunStore, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestCeiling))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		opsHandler := handler.NewOperationsHandler(ops, logger)
		runsHandler := handler.NewRunsHandler(store, logger)

		r.Post("/review", opsHandler.Review)
		r.Post("/generate", opsHandler.Generate)
		r.Get("/runs/{runID}", runsHandler.GetRun)
		r.Get("/threads/{threadID}/runs", runsHandler.ListThreadRuns)
	})

	return r
}

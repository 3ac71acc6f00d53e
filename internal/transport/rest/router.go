package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Journal *JournalHandler
	Health  *HealthHandler
	CORS    config.CORSConfig
	Logger  *slog.Logger
}

// NewRouter builds the HTTP API. Middleware order, outermost first:
// request id, request log, panic recovery, CORS.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeValidation, "method not allowed")
	})

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)

	j := deps.Journal
	r.Route("/entries", func(r chi.Router) {
		r.Get("/", j.ListEntries)
		r.Post("/", j.CreateEntry)
		r.Get("/{id}", j.GetEntry)
		r.Put("/{id}", j.UpdateEntry)
		r.Delete("/{id}", j.DeleteEntry)
	})
	r.Get("/export", j.Export)
	r.Get("/export.xlsx", j.ExportSpreadsheet)
	r.Post("/import", j.Import)
	r.Get("/stats", j.Stats)
	r.Get("/palette", j.Palette)

	return r
}

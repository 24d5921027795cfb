// Package api implements the HTTP gateway over one virtual filesystem.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmos91/kvfs/pkg/api/handlers"
	"github.com/marmos91/kvfs/pkg/metrics"
	"github.com/marmos91/kvfs/pkg/vfs"
)

// NewRouter creates and configures the chi router.
//
// Routes:
//   - GET  /health                 - Liveness probe
//   - GET  /health/ready           - Readiness probe (store reachable)
//   - GET  /metrics                - Prometheus metrics (when enabled)
//   - GET  /api/v1/files           - Listing (?prefix=&recursive=)
//   - GET  /api/v1/files/*         - File content
//   - PUT  /api/v1/files/*         - Store request body as file payload
//   - DELETE /api/v1/files/*       - Remove (?recursive=&quiet=)
//   - GET  /api/v1/metadata/*      - Record metadata without payload
func NewRouter(fs *vfs.Filesystem, requestTimeout time.Duration, maxBody int64) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	healthHandler := handlers.NewHealthHandler(fs)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	if reg := metrics.GetRegistry(); reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	filesHandler := handlers.NewFilesHandler(fs, maxBody)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/files", filesHandler.List)
		r.Get("/files/*", filesHandler.Read)
		r.Put("/files/*", filesHandler.Write)
		r.Delete("/files/*", filesHandler.Remove)
		r.Get("/metadata/*", filesHandler.Metadata)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return r
}

package server

import (
	"net/http"

	"pdftools/gateway/pkg/gateway/handlers"
	"pdftools/gateway/pkg/gateway/middleware"
	"pdftools/gateway/pkg/gateway/types"
	"pdftools/gateway/pkg/telemetry/health"

	"github.com/go-chi/chi/v5"
)

// routes builds the router. Middleware runs outermost first:
// Recovery, RequestID, Logging, Metrics. Metrics sits innermost so a
// panic is recorded as a 500 before Recovery writes the response.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware(s.logger))
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(s.logger))
	r.Use(middleware.MetricsMiddleware(s.collector, s.detector, s.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		types.WriteDetail(w, http.StatusNotFound, types.DetailNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		types.WriteDetail(w, http.StatusMethodNotAllowed, types.DetailMethodNotAllowed)
	})

	checker := health.New(readinessTimeout)
	checker.RegisterCheck("temp_dir", health.TempDirCheck(s.cfg.Convert.TempDir))
	checker.RegisterCheck("metrics", health.GathererCheck(s.collector.Registry()))

	r.Get("/", handlers.Root(s.build.Version))
	r.Get("/health", handlers.Health())
	r.Get("/ready", checker.ReadinessHandler())
	r.Get("/version", health.VersionHandler(s.build.Version, s.build.Commit, s.build.BuildTime))

	if s.cfg.Telemetry.Metrics.Enabled {
		r.Method(http.MethodGet, s.cfg.Telemetry.Metrics.Path, s.collector.Handler())
	}

	convertHandler := handlers.NewConvertHandler(s.converter, s.collector, s.logger, s.cfg.Convert)
	r.Route("/api/v1/convert", func(r chi.Router) {
		r.Use(middleware.ConcurrencyLimitMiddleware(s.conversions))
		r.Post("/compress", convertHandler.Compress)
		r.Post("/merge", convertHandler.Merge)
		r.Post("/pdf-to-word", convertHandler.PDFToWord)
		r.Post("/word-to-pdf", convertHandler.WordToPDF)
	})

	return r
}

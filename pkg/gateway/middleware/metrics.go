package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"pdftools/gateway/pkg/botdetect"
	"pdftools/gateway/pkg/telemetry/logging"
	"pdftools/gateway/pkg/telemetry/metrics"

	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware instruments every request that passes through it:
//
//  1. the start time is taken;
//  2. the User-Agent is matched against the crawler table and, on the first
//     match, crawler_visits_total is incremented once;
//  3. the downstream handler runs;
//  4. http_requests_total and http_request_duration_seconds are recorded under
//     the matched route pattern, or "unmatched" when no route matched.
//
// A panicking handler is recorded with status 500 and the panic is re-raised
// for RecoveryMiddleware. Requests whose client went away before any status
// was written, including http.ErrAbortHandler panics, are not recorded.
// Recording errors are logged and never change the response.
//
// Register it with chi's Use so the route pattern is available once the
// handler returns.
func MetricsMiddleware(collector *metrics.Collector, detector *botdetect.Detector, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			if detector != nil {
				if bot, ok := detector.Match(r.UserAgent()); ok {
					if err := collector.RecordCrawlerVisit(bot); err != nil {
						logger.ErrorContext(r.Context(), "failed to record crawler visit", "bot", bot, "error", err)
					}
					r = r.WithContext(logging.WithBot(r.Context(), bot))
				}
			}

			rw := newResponseWriter(w)
			completed := false

			defer func() {
				if completed {
					return
				}
				p := recover()
				if p == nil {
					// runtime.Goexit; nothing to report.
					return
				}
				if p != http.ErrAbortHandler {
					record(collector, logger, r, http.StatusInternalServerError, time.Since(start))
				}
				panic(p)
			}()

			next.ServeHTTP(rw, r)
			completed = true

			elapsed := time.Since(start)

			if !rw.wroteHeader && r.Context().Err() != nil {
				return
			}
			record(collector, logger, r, rw.statusCode, elapsed)
		})
	}
}

func record(collector *metrics.Collector, logger *slog.Logger, r *http.Request, status int, elapsed time.Duration) {
	endpoint := routePattern(r)
	if err := collector.RecordHTTPRequest(endpoint, r.Method, status, elapsed); err != nil {
		logger.ErrorContext(r.Context(), "failed to record request metrics",
			"endpoint", endpoint,
			"method", r.Method,
			"status", status,
			"error", err,
		)
	}
}

// routePattern returns the chi route pattern that served r, which keeps the
// endpoint label bounded regardless of the paths clients send.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return metrics.EndpointUnmatched
}

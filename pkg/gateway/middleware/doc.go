// Package middleware provides the HTTP middleware chain of the gateway.
//
// The server installs them outermost first:
//
//	RecoveryMiddleware  - turns panics into 500 {"detail": ...}
//	RequestIDMiddleware - assigns X-Request-ID and stores it for logging
//	LoggingMiddleware   - one structured log line per request
//	MetricsMiddleware   - request, latency and crawler metrics
//
// The middlewares share one status-capturing response writer, so the
// outer ones observe the status written by the handler.
//
// ConcurrencyLimitMiddleware is mounted on the conversion routes only and
// answers 503 once convert.max_concurrent conversions are running.
package middleware

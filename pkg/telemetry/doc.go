// Package telemetry groups the gateway's observability packages.
//
//   - logging: slog logger with request-scoped context fields
//   - metrics: Prometheus registry of request, conversion and crawler metrics
//   - health: readiness checks and version endpoint
package telemetry

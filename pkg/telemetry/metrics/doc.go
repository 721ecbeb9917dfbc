// Package metrics provides the gateway's Prometheus metrics.
//
// # Metrics
//
//   - http_requests_total{tool,endpoint,method,status}: completed HTTP requests
//   - http_request_duration_seconds{tool,endpoint,method}: request latency
//   - conversion_total{tool,conversion_type,status}: conversion outcomes
//   - file_size_bytes{tool,operation}: upload and result sizes
//   - crawler_visits_total{tool,bot}: requests from known crawlers
//
// The table lives in Definitions and is fixed at construction. The tool label
// is curried into every vector, so callers supply only the remaining labels.
//
// # Usage
//
//	collector, err := metrics.NewCollector("pdf-tools", &cfg.Telemetry.Metrics, nil)
//	if err != nil {
//		return err
//	}
//
//	// Typed helpers, label arity checked by the compiler
//	_ = collector.RecordHTTPRequest("/health", "GET", 200, elapsed)
//	_ = collector.RecordCrawlerVisit("Googlebot")
//
//	// Generic API, label names checked at runtime
//	err = collector.IncCounter(metrics.ConversionTotal, map[string]string{
//		"conversion_type": "compress",
//		"status":          "success",
//	})
//
//	// Exposition
//	http.Handle("/metrics", collector.Handler())
//	text, err := collector.Render()
//
// # Cardinality
//
// The endpoint label must be a route pattern, never a raw path. Requests that
// match no route use EndpointUnmatched. Distinct endpoint values beyond
// MetricsConfig.MaxEndpoints are folded into EndpointOther.
//
// # Errors
//
// Registration problems are returned by NewCollector and are fatal at
// startup. Recording methods return ErrUnknownMetric, ErrKindMismatch or
// ErrLabelMismatch; they never panic.
//
// # Thread Safety
//
// A Collector is immutable after construction and safe for concurrent use.
package metrics

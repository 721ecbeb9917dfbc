// Package server wires the PDF tools gateway together and manages the HTTP
// server lifecycle.
//
// # Routes
//
//   - GET / - service name, version and description
//   - GET /health - liveness, {"status":"healthy","service":"pdf-tools"}
//   - GET /ready - readiness checks (temp dir writable, metrics gatherable)
//   - GET /version - build information
//   - GET /metrics - Prometheus exposition (path configurable, omitted when
//     metrics are disabled)
//   - POST /api/v1/convert/{compress,merge,pdf-to-word,word-to-pdf}
//
// Unknown paths answer 404 and known paths with the wrong method answer 405,
// both with a {"detail": "..."} body.
//
// # Middleware Chain
//
// Requests pass through, outermost first:
//  1. Recovery: turns panics into 500 {"detail":"Internal Server Error"}
//  2. RequestID: accepts or generates X-Request-ID
//  3. Logging: one log line per request
//  4. Metrics: crawler detection, request count and duration
//
// The conversion routes additionally pass through a concurrency limit
// (convert.max_concurrent) that answers 503 when full.
//
// # Basic Usage
//
//	srv, err := server.New(server.Options{
//	    Config:    cfg,
//	    Logger:    logger,
//	    Collector: collector,
//	    Detector:  botdetect.New(cfg.Tools.BotPatterns),
//	    Converter: convert.NewEngine(cfg.Convert.TempDir),
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx) // returns after ctx is cancelled and shutdown completes
package server

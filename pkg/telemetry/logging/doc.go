// Package logging builds the gateway's structured logger on log/slog.
//
// New returns a *slog.Logger whose handler copies request-scoped values
// (request ID, matched crawler) from the context into every record logged
// with InfoContext, ErrorContext and friends:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//		return err
//	}
//	slog.SetDefault(logger)
//
//	ctx = logging.WithRequestID(ctx, id)
//	logger.InfoContext(ctx, "compressed", "bytes", n) // includes request_id
package logging

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"pdftools/gateway/pkg/gateway/types"
)

// RecoveryMiddleware recovers from panics in downstream handlers, logs the
// stack and responds 500 {"detail":"Internal Server Error"} if nothing has
// been written yet. http.ErrAbortHandler is re-raised so net/http can abort
// the connection as intended.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				if rw.wroteHeader {
					return
				}
				types.WriteDetail(rw, http.StatusInternalServerError, types.DetailInternalServerError)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

package middleware

import (
	"net/http"
	"sync/atomic"

	"pdftools/gateway/pkg/gateway/types"
)

// DetailTooManyConversions is returned when every conversion slot is taken.
const DetailTooManyConversions = "Too many conversions in progress, please retry shortly"

// ConcurrencyLimiter is a lock-free counting semaphore.
type ConcurrencyLimiter struct {
	limit   int64
	current atomic.Int64
}

// NewConcurrencyLimiter creates a limiter admitting at most limit holders.
// A limit of zero or less admits everyone.
func NewConcurrencyLimiter(limit int) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{limit: int64(limit)}
}

// Acquire takes a slot and reports whether it succeeded. A successful
// Acquire must be paired with Release.
func (cl *ConcurrencyLimiter) Acquire() bool {
	n := cl.current.Add(1)
	if cl.limit > 0 && n > cl.limit {
		cl.current.Add(-1)
		return false
	}
	return true
}

// Release returns a slot taken by Acquire.
func (cl *ConcurrencyLimiter) Release() {
	cl.current.Add(-1)
}

// InFlight returns the number of slots currently held.
func (cl *ConcurrencyLimiter) InFlight() int64 {
	return cl.current.Load()
}

// ConcurrencyLimitMiddleware rejects requests with 503 while limiter is
// full. It is mounted on the conversion routes, which hold whole documents
// in memory.
func ConcurrencyLimitMiddleware(limiter *ConcurrencyLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Acquire() {
				w.Header().Set("Retry-After", "1")
				types.WriteDetail(w, http.StatusServiceUnavailable, DetailTooManyConversions)
				return
			}
			defer limiter.Release()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrencyLimiter_Basic(t *testing.T) {
	limiter := NewConcurrencyLimiter(2)

	require.True(t, limiter.Acquire())
	require.True(t, limiter.Acquire())
	assert.False(t, limiter.Acquire())
	assert.Equal(t, int64(2), limiter.InFlight())

	limiter.Release()
	assert.True(t, limiter.Acquire())
}

func TestConcurrencyLimiter_Unlimited(t *testing.T) {
	limiter := NewConcurrencyLimiter(0)
	for i := 0; i < 1000; i++ {
		require.True(t, limiter.Acquire())
	}
	assert.Equal(t, int64(1000), limiter.InFlight())
}

func TestConcurrencyLimiter_Concurrent(t *testing.T) {
	limiter := NewConcurrencyLimiter(10)

	var (
		attempts sync.WaitGroup
		holders  sync.WaitGroup
		acquired atomic.Int64
	)
	hold := make(chan struct{})

	for i := 0; i < 50; i++ {
		attempts.Add(1)
		holders.Add(1)
		go func() {
			defer holders.Done()
			ok := limiter.Acquire()
			if ok {
				acquired.Add(1)
			}
			attempts.Done()
			if !ok {
				return
			}
			<-hold
			limiter.Release()
		}()
	}

	attempts.Wait()
	got := acquired.Load()
	assert.LessOrEqual(t, got, int64(10))
	assert.Positive(t, got)
	assert.Equal(t, got, limiter.InFlight())

	close(hold)
	holders.Wait()
	assert.Zero(t, limiter.InFlight())
}

func TestConcurrencyLimitMiddleware(t *testing.T) {
	limiter := NewConcurrencyLimiter(1)
	entered := make(chan struct{})
	release := make(chan struct{})

	h := ConcurrencyLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/convert/compress", nil))
		close(done)
	}()
	<-entered

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/convert/compress", nil))

	assert.Equal(t, http.StatusServiceUnavailable, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"detail":"`+DetailTooManyConversions+`"}`, second.Body.String())

	close(release)
	<-done
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Zero(t, limiter.InFlight())
}

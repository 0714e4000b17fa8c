package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(RateLimitMiddleware(ctx, rps, burst, discardLogger()))
	router.POST("/encrypt", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func sendFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/encrypt", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Success_WithinBurst", func(t *testing.T) {
		router := newRateLimitedRouter(t, 1, 3)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, sendFrom(router, "10.0.0.1:1000").Code)
		}
	})

	t.Run("Error_BurstExceeded", func(t *testing.T) {
		router := newRateLimitedRouter(t, 0.5, 1)

		assert.Equal(t, http.StatusOK, sendFrom(router, "10.0.0.1:1000").Code)

		w := sendFrom(router, "10.0.0.1:1000")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"rate_limit_exceeded","message":"Too many requests. Please retry after the specified delay."}`, w.Body.String())

		retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, retryAfter, 1)
		assert.LessOrEqual(t, retryAfter, 2)
	})

	t.Run("Success_IndependentPerClientIP", func(t *testing.T) {
		router := newRateLimitedRouter(t, 0.001, 1)

		assert.Equal(t, http.StatusOK, sendFrom(router, "10.0.0.1:1000").Code)
		assert.Equal(t, http.StatusTooManyRequests, sendFrom(router, "10.0.0.1:1001").Code)
		assert.Equal(t, http.StatusOK, sendFrom(router, "10.0.0.2:1000").Code)
	})

	t.Run("Success_ConcurrentClients", func(t *testing.T) {
		router := newRateLimitedRouter(t, 0.001, 5)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if sendFrom(router, "10.0.0.9:1000").Code == http.StatusOK {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 5, allowed)
	})
}

func TestRateLimiterStore_RemoveIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}

	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")

	val, ok := store.limiters.Load("10.0.0.1")
	require.True(t, ok)
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.removeIdle(time.Now().Add(-time.Hour))

	_, ok = store.limiters.Load("10.0.0.1")
	assert.False(t, ok)
	_, ok = store.limiters.Load("10.0.0.2")
	assert.True(t, ok)
}

func TestRateLimiterStore_CleanupStopsOnCancel(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.cleanupStale(ctx, 10*time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}

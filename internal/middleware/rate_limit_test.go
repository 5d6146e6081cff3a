package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"accounthub/internal/middleware"
)

// memoryStore is an in-memory RateLimitStore for testing.
type memoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{counts: make(map[string]int64)}
}

func (s *memoryStore) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func (s *memoryStore) GetTTL(_ context.Context, _ string) (time.Duration, error) {
	return 30 * time.Second, nil
}

func newRateLimitServer(config middleware.RateLimitConfig) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RateLimit(config))
	e.POST("/signin", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func doSignin(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_UnderLimit(t *testing.T) {
	e := newRateLimitServer(middleware.RateLimitConfig{
		Store:  newMemoryStore(),
		Limit:  3,
		Window: time.Minute,
	})

	for range 3 {
		rec := doSignin(e)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	e := newRateLimitServer(middleware.RateLimitConfig{
		Store:  newMemoryStore(),
		Limit:  2,
		Window: time.Minute,
	})

	doSignin(e)
	doSignin(e)
	rec := doSignin(e)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_SetsHeaders(t *testing.T) {
	e := newRateLimitServer(middleware.RateLimitConfig{
		Store:  newMemoryStore(),
		Limit:  5,
		Window: time.Minute,
	})

	rec := doSignin(e)

	assert.Equal(t, "5", rec.Header().Get("X-Ratelimit-Limit"))
	assert.Equal(t, "4", rec.Header().Get("X-Ratelimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-Ratelimit-Reset"))
}

func TestRateLimit_NilStoreDisablesLimiting(t *testing.T) {
	e := newRateLimitServer(middleware.RateLimitConfig{Limit: 1})

	for range 5 {
		rec := doSignin(e)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_StoreFailureAllowsRequest(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("redis unavailable")

	e := newRateLimitServer(middleware.RateLimitConfig{
		Store:  store,
		Limit:  1,
		Window: time.Minute,
	})

	for range 3 {
		rec := doSignin(e)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

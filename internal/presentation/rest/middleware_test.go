package rest

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiter_Allow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(5, clock.now)

	for i := 0; i < 5; i++ {
		require.True(t, rl.Allow(), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow(), "burst exhausted")

	clock.advance(200 * time.Millisecond)
	assert.True(t, rl.Allow(), "one token refilled")
	assert.False(t, rl.Allow())

	clock.advance(time.Hour)
	for i := 0; i < 5; i++ {
		require.True(t, rl.Allow())
	}
	assert.False(t, rl.Allow(), "refill is capped at the burst size")
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("rejects when exhausted", func(t *testing.T) {
		clock := &fakeClock{t: time.Now()}
		h := RateLimitMiddleware(newRateLimiter(1, clock.now), logger)(next)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "rate limit exceeded")
	})

	t.Run("nil limiter disables limiting", func(t *testing.T) {
		h := RateLimitMiddleware(nil, logger)(next)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", nil))
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/score", nil))
	assert.Contains(t, buf.String(), "path=/v1/score")
	assert.Contains(t, buf.String(), "status=422")

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String(), "probes log at debug")
}

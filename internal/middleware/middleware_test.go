package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/valpere/nalsi/internal/services"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/tests/helpers"
)

func newTestMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	return metrics.NewWithRegistry(reg, reg)
}

func TestNewRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 20)
	defer limiter.Stop()

	assert.NotNil(t, limiter.limiters)
	assert.Equal(t, rate.Limit(10), limiter.rate)
	assert.Equal(t, 20, limiter.burst)
	assert.Empty(t, limiter.limiters)
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("creates limiter for new key", func(t *testing.T) {
		limiter := NewRateLimiter(rate.Limit(10), 5)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("api:10.0.0.1"))

		limiter.mu.Lock()
		_, exists := limiter.limiters["api:10.0.0.1"]
		limiter.mu.Unlock()
		assert.True(t, exists)
	})

	t.Run("denies after exceeding burst", func(t *testing.T) {
		limiter := NewRateLimiter(rate.Limit(1), 2)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("k"))
		assert.True(t, limiter.Allow("k"))
		assert.False(t, limiter.Allow("k"))
	})

	t.Run("recovers after waiting", func(t *testing.T) {
		limiter := NewRateLimiter(rate.Limit(10), 1)
		defer limiter.Stop()

		assert.True(t, limiter.Allow("k"))
		assert.False(t, limiter.Allow("k"))

		time.Sleep(150 * time.Millisecond)
		assert.True(t, limiter.Allow("k"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(rate.Every(time.Hour), 1)
		defer limiter.Stop()

		assert.True(t, limiter.AllowUser(1))
		assert.False(t, limiter.AllowUser(1))
		assert.True(t, limiter.AllowUser(2))
		assert.True(t, limiter.Allow("api:1"))
	})

	t.Run("concurrent access shares one bucket per key", func(t *testing.T) {
		limiter := NewRateLimiter(rate.Every(time.Hour), 10)
		defer limiter.Stop()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.AllowUser(42) {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, allowed)
	})
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 1)
	defer limiter.Stop()

	limiter.Allow("old")
	limiter.Allow("fresh")

	limiter.mu.Lock()
	limiter.limiters["old"].lastAccess = time.Now().Add(-2 * time.Hour)
	limiter.mu.Unlock()

	limiter.cleanup(time.Now().Add(-maxIdle))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.limiters, "old")
	assert.Contains(t, limiter.limiters, "fresh")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 1)

	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestInstrument(t *testing.T) {
	bot := helpers.NewMockBot().Bot

	t.Run("counts successful updates", func(t *testing.T) {
		m := newTestMetrics()
		logger := helpers.NewTestLogger()
		handler := Instrument(m, logger.Logger, "command", func(b *gotgbot.Bot, ctx *ext.Context) error {
			return nil
		})

		require.NoError(t, handler(bot, helpers.NewSimpleMockContext(777, "/help").Context))

		assert.Equal(t, 1.0, m.CounterValue("bot_updates_total", "command"))
		assert.Equal(t, 0.0, m.CounterValue("bot_errors_total", "command"))
		logger.AssertLogContains(t, "Update processed")
		logger.AssertLogContains(t, `"user_id":777`)
		logger.AssertLogLevel(t, "debug")
	})

	t.Run("counts and logs handler errors", func(t *testing.T) {
		m := newTestMetrics()
		logger := helpers.NewTestLogger()
		handler := Instrument(m, logger.Logger, "location", func(b *gotgbot.Bot, ctx *ext.Context) error {
			return errors.New("send failed")
		})

		err := handler(bot, helpers.NewMockContextWithLocation(777, 37.5, 127.0).Context)

		assert.EqualError(t, err, "send failed")
		assert.Equal(t, 1.0, m.CounterValue("bot_updates_total", "location"))
		assert.Equal(t, 1.0, m.CounterValue("bot_errors_total", "location"))
		logger.AssertLogLevel(t, "error")
		logger.AssertLogContains(t, "send failed")
	})

	t.Run("works without metrics", func(t *testing.T) {
		handler := Instrument(nil, helpers.NewSilentTestLogger(), "text", func(b *gotgbot.Bot, ctx *ext.Context) error {
			return nil
		})

		assert.NoError(t, handler(bot, helpers.NewSimpleMockContext(1, "Seoul").Context))
	})
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := helpers.NewTestLogger()
	router := gin.New()
	router.Use(RequestLogger(logger.Logger))

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = services.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	logger.AssertLogContains(t, "Request processed")
	logger.AssertLogContains(t, `"request_id":"`+seen+`"`)
	logger.AssertLogContains(t, `"status":204`)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(rate.Every(time.Hour), 1)
	defer limiter.Stop()
	m := newTestMetrics()

	router := gin.New()
	router.Use(RateLimit(limiter, m))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	request := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, request("192.0.2.1:1234").Code)

	w := request("192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":{"kind":"rate_limited","message":"rate limit exceeded, please try again later"}}`, w.Body.String())
	assert.Equal(t, 1.0, m.CounterValue("rate_limited_total", "api"))

	assert.Equal(t, http.StatusOK, request("192.0.2.2:1234").Code)
}

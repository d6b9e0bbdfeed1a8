package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/valpere/nalsi/internal/services"
	"github.com/valpere/nalsi/pkg/metrics"
)

const (
	cleanupInterval = 15 * time.Minute
	maxIdle         = time.Hour
)

// RateLimiter manages a token bucket per caller: a Telegram user or an API client address
type RateLimiter struct {
	limiters map[string]*rateLimiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int

	stop     chan struct{}
	stopOnce sync.Once
}

// rateLimiterEntry holds a limiter with its last access time for cleanup
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rateLimiterEntry),
		rate:     r,
		burst:    b,
		stop:     make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	entry, exists := rl.limiters[key]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastAccess = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

// AllowUser is Allow keyed by Telegram user ID
func (rl *RateLimiter) AllowUser(userID int64) bool {
	return rl.Allow("tg:" + strconv.FormatInt(userID, 10))
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now().Add(-maxIdle))
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes limiters not used since cutoff
func (rl *RateLimiter) cleanup(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Instrument wraps a Telegram handler with update counting, timing and error logging
func Instrument(m *metrics.Metrics, logger *zerolog.Logger, updateType string, next handlers.Response) handlers.Response {
	return func(bot *gotgbot.Bot, ctx *ext.Context) error {
		start := time.Now()
		err := next(bot, ctx)
		duration := time.Since(start)

		if m != nil {
			m.IncrementCounter("bot_updates_total", updateType)
			m.ObserveHistogram("bot_handler_duration_seconds", duration.Seconds(), updateType)
			if err != nil {
				m.IncrementCounter("bot_errors_total", updateType)
			}
		}

		event := logger.Debug()
		if err != nil {
			event = logger.Error().Err(err)
		}
		if user := ctx.EffectiveUser; user != nil {
			event = event.Int64("user_id", user.Id)
		}
		if chat := ctx.EffectiveChat; chat != nil {
			event = event.Int64("chat_id", chat.Id)
		}
		event.
			Str("type", updateType).
			Dur("duration", duration).
			Msg("Update processed")

		return err
	}
}

// RequestLogger tags each API request with a request ID and logs its outcome
func RequestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := services.WithRequestID(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", services.RequestID(ctx))

		c.Next()

		logger.Info().
			Str("request_id", services.RequestID(ctx)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	}
}

// RateLimit rejects API clients that exceed the limiter, keyed by client address
func RateLimit(limiter *RateLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow("api:" + c.ClientIP()) {
			c.Next()
			return
		}

		if m != nil {
			m.IncrementCounter("rate_limited_total", "api")
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": gin.H{
				"kind":    "rate_limited",
				"message": "rate limit exceeded, please try again later",
			},
		})
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"contact-keeper/internal/logger"
	"contact-keeper/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type windowRecord struct {
	start time.Time
	count int
}

// FixedWindowLimiter caps each client to max requests per fixed window.
// The counter resets at window boundaries rather than sliding. It is
// constructed once at process start and shared by reference; the map is
// mutex-guarded because every concurrent request touches it.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	records map[string]*windowRecord
	max     int
	window  time.Duration

	now func() time.Time
}

// NewFixedWindowLimiter creates a new limiter allowing max requests per
// window per client.
func NewFixedWindowLimiter(max int, window time.Duration) *FixedWindowLimiter {
	rl := &FixedWindowLimiter{
		records: make(map[string]*windowRecord),
		max:     max,
		window:  window,
		now:     time.Now,
	}

	go rl.cleanup()

	return rl
}

// Allow records a request for clientID and reports whether it is within
// the window budget.
func (rl *FixedWindowLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	rec, exists := rl.records[clientID]
	if !exists {
		rl.records[clientID] = &windowRecord{start: now, count: 1}
		return true
	}

	if now.Sub(rec.start) > rl.window {
		rec.start = now
		rec.count = 1
		return true
	}

	if rec.count < rl.max {
		rec.count++
		return true
	}

	return false
}

// cleanup drops records whose window has long elapsed to keep the map from
// growing without bound.
func (rl *FixedWindowLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := rl.now().Add(-2 * rl.window)
		for id, rec := range rl.records {
			if rec.start.Before(cutoff) {
				delete(rl.records, id)
			}
		}
		rl.mu.Unlock()
	}
}

// FixedWindowMiddleware gates requests through the shared limiter, keyed by
// client IP. Denied requests get a 429.
func FixedWindowMiddleware(limiter *FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.Allow(ip) {
			logger.Warn("Rate limit exceeded",
				zap.String("request_id", GetRequestID(c)),
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
			)

			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too Many Requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

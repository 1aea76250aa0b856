package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/uniease-api/internal/httperr"
)

const visitorIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter allows perMinute requests per IP, with the whole minute's
// allowance available as a burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		visitors: map[string]*visitor{},
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Cleanup forgets visitors idle for longer than visitorIdle.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-visitorIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.getLimiter(ip).Allow() {
			logrus.WithFields(logrus.Fields{"ip": ip, "path": c.FullPath()}).Warn("rate limit exceeded")
			httperr.Write(c, http.StatusTooManyRequests, "too_many_requests", "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

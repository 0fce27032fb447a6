package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/knchan0x/fullstack-open-bloglist/config"
	"github.com/knchan0x/fullstack-open-bloglist/utils"
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

var (
	limiters   = map[string]*rateLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware applies a per-IP token bucket to credential endpoints
// (login and registration) to slow down brute forcing.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := cfg.RateLimitPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	r := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}

	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		if !allow(ip, r, burst) {
			utils.AbortFail(ctx, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		ctx.Next()
	}
}

func allow(key string, limit rate.Limit, burst int) bool {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	cleanupExpiredLimitersLocked()

	entry, ok := limiters[key]
	if !ok {
		entry = &rateLimiter{limiter: rate.NewLimiter(limit, burst)}
		limiters[key] = entry
	}
	entry.expires = time.Now().Add(5 * time.Minute)
	return entry.limiter.Allow()
}

func cleanupExpiredLimitersLocked() {
	now := time.Now()
	for key, entry := range limiters {
		if now.After(entry.expires) {
			delete(limiters, key)
		}
	}
}

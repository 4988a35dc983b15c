package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

const (
	limiterBurst   = 5
	limiterIdleTTL = 10 * time.Minute
)

type learnerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per authenticated learner. Requests without a
// learner identity share a single bucket.
type RateLimiter struct {
	perMinute int
	limiters  map[string]*learnerLimiter
	mu        sync.Mutex
	now       func() time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		limiters:  make(map[string]*learnerLimiter),
		now:       time.Now,
	}
}

func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rl == nil || rl.perMinute <= 0 {
			return c.Next()
		}

		key := "anonymous"
		if id, ok := LearnerID(c); ok {
			key = id.String()
		}

		if !rl.allow(key) {
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	l, ok := rl.limiters[key]
	if !ok {
		rps := rate.Limit(float64(rl.perMinute) / 60.0)
		burst := limiterBurst
		if rl.perMinute < burst {
			burst = rl.perMinute
		}
		l = &learnerLimiter{limiter: rate.NewLimiter(rps, burst)}
		rl.limiters[key] = l
	}
	l.lastSeen = now
	rl.cleanupLocked(now)

	return l.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) cleanupLocked(now time.Time) {
	for k, l := range rl.limiters {
		if now.Sub(l.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, k)
		}
	}
}

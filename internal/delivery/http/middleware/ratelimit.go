package middleware

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/metrics"
	"github.com/heritage-catalog/internal/pkg/utils"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter - token bucket на каждый IP клиента
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter создает лимитер на requestsPerMinute запросов с запасом burst
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		rate:      rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow расходует один токен клиента key
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for k, cl := range rl.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(rl.limiters, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimit ограничивает только пишущие запросы (POST, PUT, PATCH, DELETE).
// requestsPerMinute <= 0 отключает ограничение.
func RateLimit(requestsPerMinute, burst int) fiber.Handler {
	if requestsPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := NewRateLimiter(requestsPerMinute, burst)

	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		if !limiter.Allow(c.IP()) {
			metrics.APIRateLimitHits.WithLabelValues(pathPattern(c.Path())).Inc()
			c.Set("Retry-After", strconv.Itoa(int(time.Minute.Seconds())/requestsPerMinute+1))
			return utils.SendError(c, errors.ErrRateLimited.WithDetails(map[string]interface{}{
				"requests_per_minute": requestsPerMinute,
			}))
		}
		return c.Next()
	}
}

// pathPattern заменяет числовые сегменты на :id, чтобы не плодить метки.
// Маршрут ещё не сопоставлен, когда срабатывает лимит.
func pathPattern(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

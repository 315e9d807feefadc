package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client. Buckets of clients that
// stay idle longer than the expiry are dropped.
type RateLimiter struct {
	limiters *gocache.Cache
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	expiry   time.Duration
}

func NewRateLimiter(rps float64, burst int, idleExpiry time.Duration) *RateLimiter {
	if idleExpiry <= 0 {
		idleExpiry = 10 * time.Minute
	}
	return &RateLimiter{
		limiters: gocache.New(idleExpiry, 2*idleExpiry),
		rps:      rate.Limit(rps),
		burst:    burst,
		expiry:   idleExpiry,
	}
}

// Allow reports whether the client identified by key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
	}
	// refresh the idle expiry on every request
	l.limiters.Set(key, limiter, l.expiry)
	l.mu.Unlock()

	return limiter.(*rate.Limiter).Allow()
}

// Handler limits authenticated requests per user and anonymous ones per IP.
func (l *RateLimiter) Handler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if userID, ok := c.Locals(LocalUserID).(uuid.UUID); ok {
			key = "user:" + userID.String()
		}

		if !l.Allow(key) {
			log.Warn("Rate limit exceeded", zap.String("client", key), zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return c.Next()
	}
}

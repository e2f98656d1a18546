package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter decides whether the client identified by key may proceed
type RateLimiter interface {
	// Allow returns whether the request is allowed, the remaining quota and when the quota resets
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
	Limit() int
	Window() time.Duration
}

// IPRateLimiter keeps one token bucket per client in process memory.
// Buckets idle for longer than the window are dropped by a sweep that runs
// at most once per window
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipBucket
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows limit requests per window per client, with the full
// limit available as burst
func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipBucket),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *IPRateLimiter) Limit() int            { return l.limit }
func (l *IPRateLimiter) Window() time.Duration { return l.window }

func (l *IPRateLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
		l.lastSweep = now
	}

	b, ok := l.limiters[key]
	if !ok {
		every := rate.Every(l.window / time.Duration(l.limit))
		b = &ipBucket{limiter: rate.NewLimiter(every, l.limit)}
		l.limiters[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	remaining := int(b.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	// Time until one token is back
	reset := now.Add(time.Duration(float64(time.Second) / float64(b.limiter.Limit())))
	return allowed, remaining, reset, nil
}

func (l *IPRateLimiter) sweep(now time.Time) {
	for key, b := range l.limiters {
		if now.Sub(b.lastSeen) > l.window {
			delete(l.limiters, key)
		}
	}
}

// RedisRateLimiter is a fixed-window counter shared across instances
type RedisRateLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, keyPrefix string) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: keyPrefix,
	}
}

func (l *RedisRateLimiter) Limit() int            { return l.limit }
func (l *RedisRateLimiter) Window() time.Duration { return l.window }

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(l.window)
	redisKey := fmt.Sprintf("%sratelimit:%s:%d", l.keyPrefix, key, windowStart.Unix())

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, windowStart.Add(l.window), nil
}

// RateLimitMiddleware rejects clients over their quota with 429.
// Limiter failures are logged and the request goes through
func RateLimitMiddleware(limiter RateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limit check failed", zap.String("request_id", requestID(c)), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(reset).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			err := fmt.Errorf("%w: %d requests per %v", domain.ErrRateLimited, limiter.Limit(), limiter.Window())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Message: err.Error()})
			return
		}

		c.Next()
	}
}

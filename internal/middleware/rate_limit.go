package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RecipeCreationLimit is the default number of recipes a user may create per hour.
const RecipeCreationLimit = 5

// RecipeCreationConfig limits recipe creation to limit per hour. A
// non-positive limit selects RecipeCreationLimit.
func RecipeCreationConfig(limit int) RateLimitConfig {
	if limit <= 0 {
		limit = RecipeCreationLimit
	}
	return RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "recipenexus:rate_limit:recipe_creation",
	}
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter counts requests per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter is a fixed window counter shared by every instance through Redis.
type RedisLimiter struct {
	redis  redis.UniversalClient
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter creates a new rate limiter instance
func NewRedisLimiter(client redis.UniversalClient, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{redis: client, config: config, now: time.Now}
}

// Allow increments the counter of key's current window.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incrCmd.Val())
	return Decision{
		Allowed:   count <= rl.config.Limit,
		Limit:     rl.config.Limit,
		Remaining: max(rl.config.Limit-count, 0),
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

// LocalLimiter is a per-key token bucket held in process memory. Each key
// may burst up to Limit requests and refills at Limit per Window.
type LocalLimiter struct {
	mu       sync.Mutex
	config   RateLimitConfig
	limiters map[string]*localEntry
	now      func() time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localPruneThreshold is the number of tracked keys above which idle
// buckets are dropped.
const localPruneThreshold = 1024

// NewLocalLimiter creates an in-process limiter.
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		config:   config,
		limiters: make(map[string]*localEntry),
		now:      time.Now,
	}
}

// Allow takes one token from key's bucket.
func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	every := l.config.Window / time.Duration(max(l.config.Limit, 1))

	e, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= localPruneThreshold {
			l.prune(now)
		}
		e = &localEntry{limiter: rate.NewLimiter(rate.Every(every), l.config.Limit)}
		l.limiters[key] = e
	}
	e.lastSeen = now

	allowed := e.limiter.AllowN(now, 1)
	remaining := int(e.limiter.TokensAt(now))
	reset := now
	if remaining < l.config.Limit {
		reset = now.Add(every)
	}
	return Decision{
		Allowed:   allowed,
		Limit:     l.config.Limit,
		Remaining: max(remaining, 0),
		Reset:     reset,
	}, nil
}

// prune drops buckets idle for a full window; those are full again anyway.
func (l *LocalLimiter) prune(now time.Time) {
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.config.Window {
			delete(l.limiters, k)
		}
	}
}

// RateLimit enforces limiter per authenticated user. It must run after
// AuthMiddleware. Limiter errors let the request through.
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		user := Username(c)
		if user == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
			return
		}

		d, err := limiter.Allow(c.Request.Context(), user)
		if err != nil {
			logger.Warn("rate limit check failed", zap.String("username", user), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

		if !d.Allowed {
			retry := int(time.Until(d.Reset).Seconds())
			c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": max(retry, 1),
			})
			return
		}
		c.Next()
	}
}

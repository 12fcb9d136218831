// Package ratelimit implements a Redis sliding-window limiter for fiber routes.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/auth"
	"github.com/matchstack-dev/matchstack/internal/observability"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// Checker decides whether one more request fits into key's window.
type Checker interface {
	CheckAndIncrement(ctx context.Context, key string, limit int, window time.Duration) (bool, int, time.Time, error)
}

// RedisLimiter keeps one sorted set of request timestamps per key.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisLimiter builds a limiter on the given client.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

// CheckAndIncrement records the request and reports (allowed, remaining, resetAt).
func (rl *RedisLimiter) CheckAndIncrement(ctx context.Context, key string, limit int, window time.Duration) (bool, int, time.Time, error) {
	now := rl.now()
	windowStart := now.Add(-window)

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart.UnixMilli(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, limit, now.Add(window), err
	}

	count := int(countCmd.Val())
	remaining := limit - count - 1
	if remaining < 0 {
		remaining = 0
	}
	return count < limit, remaining, now.Add(window), nil
}

// KeyFunc derives the bucket key for a request.
type KeyFunc func(c *fiber.Ctx) string

// ByIP buckets requests by client address.
func ByIP(bucket string) KeyFunc {
	return func(c *fiber.Ctx) string {
		return fmt.Sprintf("ratelimit:%s:ip:%s", bucket, c.IP())
	}
}

// ByUser buckets requests by authenticated user, falling back to the client address.
func ByUser(bucket string) KeyFunc {
	return func(c *fiber.Ctx) string {
		if principal, ok := auth.PrincipalFromContext(c); ok {
			return fmt.Sprintf("ratelimit:%s:user:%s", bucket, principal.UserID())
		}
		return fmt.Sprintf("ratelimit:%s:ip:%s", bucket, c.IP())
	}
}

// Rule configures one limited route group.
type Rule struct {
	Bucket   string
	Requests int
	Window   time.Duration
	Key      KeyFunc
}

// Middleware rejects requests over the rule's limit with 429.
// Limiter errors let the request through.
func Middleware(checker Checker, rule Rule, metrics *observability.Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker == nil || rule.Requests <= 0 {
			return c.Next()
		}

		allowed, remaining, resetAt, err := checker.CheckAndIncrement(c.UserContext(), rule.Key(c), rule.Requests, rule.Window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("bucket", rule.Bucket), zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rule.Requests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			metrics.RecordRateLimitHit(rule.Bucket)
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return apperrors.NewTooManyRequests("rate limit exceeded")
		}
		return c.Next()
	}
}

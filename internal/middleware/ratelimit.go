package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/logger"
)

// RateLimitStore counts a hit against a key and returns the running total
// for the current window.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// redisRateLimitStore implements a fixed window counter on Redis
type redisRateLimitStore struct {
	client *redis.Client
}

// NewRedisRateLimitStore creates a Redis-backed rate limit store
func NewRedisRateLimitStore(client *redis.Client) RateLimitStore {
	return &redisRateLimitStore{client: client}
}

// Hit increments the window counter, setting its expiry on first increment
func (s *redisRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit pipeline failed: %w", err)
	}
	return incr.Val(), nil
}

// RateLimiter enforces a fixed window request limit per client IP
type RateLimiter struct {
	store    RateLimitStore
	requests int64
	window   time.Duration
}

// NewRateLimiter creates a new RateLimiter
func NewRateLimiter(store RateLimitStore, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:    store,
		requests: int64(requests),
		window:   window,
	}
}

// Limit is the gin middleware. When the counter store is unreachable the
// request is allowed through; losing rate limiting must not take the API down.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(l.window.Seconds()))

		count, err := l.store.Hit(c.Request.Context(), key, l.window)
		if err != nil {
			logger.Warn().Err(err).Str("clientIP", c.ClientIP()).Msg("Rate limit store unavailable, allowing request")
			c.Next()
			return
		}

		if count > l.requests {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests")
			errorDetail = errorDetail.WithDetails(fmt.Sprintf("Limit is %d requests per %s", l.requests, l.window))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

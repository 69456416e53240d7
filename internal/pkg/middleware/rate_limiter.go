package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Key prefix for Redis
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware limits requests per route and caller with a fixed window
// counter in Redis. A Redis failure lets the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Limit <= 0 || config.RedisClient == nil {
				return next(c)
			}

			identifier := c.RealIP()
			if userID := UserID(c); userID != "" {
				identifier = userID
			}
			key := fmt.Sprintf("%s:%s:%s:%s", config.Key, c.Request().Method, c.Path(), identifier)
			ctx := c.Request().Context()

			count64, err := config.RedisClient.Incr(ctx, key).Result()
			if err == nil && count64 == 1 {
				err = config.RedisClient.Expire(ctx, key, config.Period).Err()
			}
			if err != nil {
				logger.WarnCtx(ctx, "Rate limiter unavailable, allowing request",
					logger.String("key", key),
					logger.Err(err))
				return next(c)
			}

			count := int(count64)
			remaining := config.Limit - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > config.Limit {
				reset, err := config.RedisClient.TTL(ctx, key).Result()
				if err != nil || reset < 0 {
					reset = config.Period
				}
				c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(reset.Seconds()), 10))
				return utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

// UserRateLimiter creates a user-based rate limiter
func UserRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         "rate:user",
		Limit:       limit,
		Period:      period,
	})
}

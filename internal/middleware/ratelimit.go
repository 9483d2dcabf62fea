package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RedisStore is a fixed-window echo rate limiter store shared by every
// instance pointing at the same Redis.
type RedisStore struct {
	rdb     *redis.Client
	limit   int
	window  time.Duration
	prefix  string
	timeout time.Duration
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisStore(rdb *redis.Client, limit int, window time.Duration) *RedisStore {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisStore{rdb: rdb, limit: limit, window: window, prefix: "rezervace:rl", timeout: 500 * time.Millisecond}
}

func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := s.prefix + ":" + identifier
	res, err := fixedWindowScript.Run(ctx, s.rdb, []string{key}, s.window.Milliseconds()).Result()
	if err != nil {
		// fail open
		log.Printf("[RateLimit] redis error for %s: %v", identifier, err)
		return true, nil
	}
	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}
	return count <= int64(s.limit), nil
}

// NewMemoryStore allows perMinute requests per client with a burst of the
// same size.
func NewMemoryStore(perMinute int) echoMw.RateLimiterStore {
	if perMinute <= 0 {
		perMinute = 10
	}
	return echoMw.NewRateLimiterMemoryStoreWithConfig(echoMw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
}

// RateLimit limits by client IP.
func RateLimit(store echoMw.RateLimiterStore) echo.MiddlewareFunc {
	return echoMw.RateLimiterWithConfig(echoMw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "cannot identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
		},
	})
}

package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	rateLimitKeyPrefix = "ratelimit:"
	rateLimitWindow    = time.Minute
)

// Counter increments a fixed-window counter and returns the new count
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter keeps rate limit windows in redis so every instance shares them
type RedisCounter struct {
	Client *redis.Client
}

// NewRedisCounter connects to redis and pings it once
func NewRedisCounter(ctx context.Context, addr, password string) (*RedisCounter, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCounter{Client: cli}, nil
}

// Incr bumps key, starting its window on the first hit
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		c.Client.Expire(ctx, key, window)
	}
	// a key without ttl would never reset
	if ttl, _ := c.Client.TTL(ctx, key).Result(); ttl < 0 {
		c.Client.Expire(ctx, key, window)
	}
	return count, nil
}

// Close releases the redis connection pool
func (c *RedisCounter) Close() error {
	return c.Client.Close()
}

// RateLimit allows limitPerMinute requests per client address. A nil counter
// or a non-positive limit disables it.
func RateLimit(counter Counter, limitPerMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil || limitPerMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKeyPrefix + clientIP(r)
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			count, err := counter.Incr(ctx, key, rateLimitWindow)
			if err != nil {
				zap.S().Errorw("rate limiter unavailable", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error": "service unavailable"}`))
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limitPerMinute))
			if count > int64(limitPerMinute) {
				w.Header().Set("Retry-After", "60")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error": "rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

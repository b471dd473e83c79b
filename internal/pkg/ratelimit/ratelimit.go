package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter increments a windowed counter and reports its value and the time
// left in the window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Result of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed-window rate limiter
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	prefix  string
}

// New creates a limiter allowing limit hits per window for each key
func New(counter Counter, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		counter: counter,
		limit:   limit,
		window:  window,
		prefix:  prefix,
	}
}

// Allow records one hit for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.counter.Incr(ctx, fmt.Sprintf("ratelimit:%s:%s", l.prefix, key), l.window)
	if err != nil {
		return Result{Allowed: true}, err
	}

	if count > int64(l.limit) {
		if ttl <= 0 {
			ttl = l.window
		}
		return Result{Allowed: false, RetryAfter: ttl}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - int(count)}, nil
}

// RedisCounter implements Counter on Redis INCR + EXPIRE
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
		return count, window, nil
	}

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return count, 0, fmt.Errorf("failed to read ttl of %s: %w", key, err)
	}
	if ttl < 0 {
		// Key lost its expiry; start the window again
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
		ttl = window
	}
	return count, ttl, nil
}

// Package ratelimit provides distributed rate limiting using Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minervahq/minerva/pkg/logger"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Lua script for an atomic fixed-window counter. The first hit in a window
// sets the expiry; later hits only increment.
const fixedWindowLuaScript = `
local current = redis.call('INCR', KEYS[1])
if current == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`

// RedisRateLimiter implements a fixed-window limiter on Redis. Redis errors
// fail open: screening availability matters more than strict limiting.
type RedisRateLimiter struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
	prefix string
	script *redis.Script
	log    logger.Logger
}

var _ Limiter = (*RedisRateLimiter)(nil)

// NewRedisRateLimiter creates a limiter allowing limit requests per window
// per key.
func NewRedisRateLimiter(client redis.UniversalClient, limit int64, window time.Duration, log logger.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "minerva:ratelimit:",
		script: redis.NewScript(fixedWindowLuaScript),
		log:    log,
	}
}

// Allow reports whether the request identified by key is within the limit.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := rl.script.Run(ctx, rl.client,
		[]string{rl.prefix + key}, rl.window.Milliseconds()).Int64()
	if err != nil {
		rl.log.Warn(ctx, "rate limiter unavailable, allowing request", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return true, nil
	}
	return count <= rl.limit, nil
}

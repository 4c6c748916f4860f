// Package redis provides Redis connection management for the rate limiter.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/minervahq/minerva/internal/config"
	"github.com/minervahq/minerva/pkg/errors"
	"github.com/minervahq/minerva/pkg/logger"
)

// RedisConnection manages the Redis client lifecycle.
type RedisConnection struct {
	client redis.UniversalClient
	log    logger.Logger
}

// NewRedisConnection creates a client and validates connectivity.
func NewRedisConnection(cfg *config.RedisConfig, log logger.Logger) (*RedisConnection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.ErrServiceUnavailable.
			WithDescription("failed to connect to redis").WithError(err)
	}

	log.Info(context.Background(), "redis connected", logger.Fields{"addr": cfg.Addr})

	return &RedisConnection{client: client, log: log}, nil
}

// Client returns the underlying client.
func (c *RedisConnection) Client() redis.UniversalClient {
	return c.client
}

// Ping checks connectivity.
func (c *RedisConnection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisConnection) Close() error {
	return c.client.Close()
}

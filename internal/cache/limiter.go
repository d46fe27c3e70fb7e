// Package cache holds Redis backed state shared between service replicas:
// the failed passphrase attempt counters of wallets.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/redis/go-redis/v9"
)

const failedAttemptsNamespace = "wallet:failed-attempts"

// ttlNoExpiry is the TTL reply for a key that exists without an expiry.
const ttlNoExpiry = time.Duration(-1)

// AttemptLimiter counts wrong passphrases per key and locks the key once
// the configured threshold is reached inside the window.
type AttemptLimiter interface {
	// Locked reports whether key is locked and for how long.
	Locked(ctx context.Context, key string) (bool, time.Duration, error)

	// RegisterFailure counts one wrong passphrase and returns the new total.
	RegisterFailure(ctx context.Context, key string) (int64, error)

	// Reset forgets the failures of key after a successful unlock.
	Reset(ctx context.Context, key string) error
}

// counterStore is the subset of redis commands the limiter needs. It is
// satisfied by every go-redis client.
type counterStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisAttemptLimiter struct {
	client      counterStore
	maxAttempts int64
	window      time.Duration
}

// NewAttemptLimiter returns a Redis backed limiter, or a limiter that never
// locks when cfg.RedisAddress is empty. The returned close function releases
// the Redis connection pool.
func NewAttemptLimiter(ctx context.Context, cfg config.Cache, log *logger.Logger) (AttemptLimiter, func() error) {
	if cfg.RedisAddress == "" {
		log.Info().Str("func", "NewAttemptLimiter").Msg("redis address is not set: failed attempt limiting disabled")
		return NopLimiter{}, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		// limiter fails open, so an unreachable redis is not fatal
		log.Warn().Err(err).Str("func", "NewAttemptLimiter").Msg("redis ping failed")
	}

	return newRedisAttemptLimiter(client, cfg), client.Close
}

func newRedisAttemptLimiter(client counterStore, cfg config.Cache) *redisAttemptLimiter {
	return &redisAttemptLimiter{
		client:      client,
		maxAttempts: int64(cfg.MaxFailedAttempts),
		window:      cfg.LockoutWindow,
	}
}

func (l *redisAttemptLimiter) Locked(ctx context.Context, key string) (bool, time.Duration, error) {
	countKey := counterKey(key)

	count, err := l.client.Get(ctx, countKey).Int64()
	if errors.Is(err, redis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("reading failed attempts: %w", err)
	}
	if count < l.maxAttempts {
		return false, 0, nil
	}

	ttl, err := l.client.TTL(ctx, countKey).Result()
	switch {
	case err != nil:
		ttl = l.window
	case ttl == ttlNoExpiry:
		// the EXPIRE after the first failure was lost: restart the window
		// so the counter cannot lock the key forever
		if err = l.client.Expire(ctx, countKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("restoring lockout window: %w", err)
		}
		ttl = l.window
	case ttl < 0:
		// expired between GET and TTL
		return false, 0, nil
	}
	return true, ttl, nil
}

func (l *redisAttemptLimiter) RegisterFailure(ctx context.Context, key string) (int64, error) {
	countKey := counterKey(key)

	count, err := l.client.Incr(ctx, countKey).Result()
	if err != nil {
		return 0, fmt.Errorf("counting failed attempt: %w", err)
	}

	// the window starts with the first failure
	if count == 1 {
		if err = l.client.Expire(ctx, countKey, l.window).Err(); err != nil {
			return count, fmt.Errorf("starting lockout window: %w", err)
		}
	}

	return count, nil
}

func (l *redisAttemptLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, counterKey(key)).Err(); err != nil {
		return fmt.Errorf("resetting failed attempts: %w", err)
	}
	return nil
}

func counterKey(key string) string {
	return failedAttemptsNamespace + ":" + key
}

// NopLimiter never locks. It is used when no Redis is configured.
type NopLimiter struct{}

func (NopLimiter) Locked(context.Context, string) (bool, time.Duration, error) { return false, 0, nil }
func (NopLimiter) RegisterFailure(context.Context, string) (int64, error)       { return 0, nil }
func (NopLimiter) Reset(context.Context, string) error                          { return nil }

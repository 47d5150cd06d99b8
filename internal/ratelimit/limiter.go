// Package ratelimit throttles the credential endpoints with a Redis-backed
// fixed window. Redis is not load-bearing: when it is unreachable the
// limiter fails open so authentication keeps working without throttling.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/stories-service/internal/config"
)

// ErrLimited signals that the caller exhausted the window's attempts.
var ErrLimited = errors.New("rate limited")

// Limiter counts attempts per key within a fixed window.
type Limiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	logger *zap.Logger
}

// NewLimiter builds a limiter over an existing Redis client.
func NewLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		max:    int64(cfg.MaxAttempts),
		window: cfg.Window(),
		logger: logger,
	}
}

// Allow records one attempt for key and reports whether it is within the
// window's budget. The first attempt of a window sets the key's expiry.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable; allowing request", zap.Error(err))
		return nil
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed; allowing request", zap.Error(err))
			return nil
		}
	}

	if count > l.max {
		return ErrLimited
	}
	return nil
}

// Package ratelimit bounds how often a single client may attempt to
// register or log in.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/habitauth/internal/common"
)

// ErrUnavailable is returned when the counter backend cannot be reached.
var ErrUnavailable = errors.New("rate limiter unavailable")

// Limiter admits or rejects one attempt for key. A rejected attempt yields
// common.ErrRateLimited.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

// RedisLimiter counts attempts per key in fixed windows stored in Redis, so
// the budget is shared by every server instance.
type RedisLimiter struct {
	redis  redis.UniversalClient
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{redis: client, limit: limit, window: window, prefix: "habitauth:rl:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	k := l.prefix + key

	// the window key is created with its TTL and counted in one MULTI/EXEC,
	// so a counter never outlives its window
	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if incr.Val() > int64(l.limit) {
		return common.ErrRateLimited
	}
	return nil
}

// Nop admits everything. It is used when no Redis address is configured.
type Nop struct{}

func (Nop) Allow(context.Context, string) error { return nil }

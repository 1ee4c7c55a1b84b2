package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Limiter enforces a fixed-window per-client cap on validation calls. It is
// the anti-abuse companion to the trust evaluator: scoring keeps bad
// addresses out, the limiter keeps one client from hammering the endpoint to
// map the scoring function.
//
// Redis failures fail open, same policy as the DNS checks: availability
// beats strictness for a signup gate.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    zerolog.Logger
}

// New connects to Redis and verifies the connection. A nil *Limiter is a
// valid no-op limiter, used when Redis is not configured.
func New(addr string, limit int, window time.Duration, log zerolog.Logger) (*Limiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Limiter{client: client, limit: limit, window: window, log: log}, nil
}

// Allow reports whether the client identified by key may proceed. INCR plus
// first-hit EXPIRE in one pipeline round-trip.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return true
	}

	redisKey := "ratelimit:" + key

	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Warn().Err(err).Msg("rate limit check failed, allowing request")
		return true
	}

	return count.Val() <= int64(l.limit)
}

func (l *Limiter) Close() error {
	if l == nil {
		return nil
	}
	return l.client.Close()
}

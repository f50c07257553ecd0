package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is the attempt guard shared by the dispatcher and the HTTP
// middleware.
type Limiter interface {
	Allow(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, error)
}

// RedisLimiter is a sliding-window limiter over a Redis sorted set, for
// the API server where attempts must be counted across instances.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, maxAttempts int, window time.Duration) (bool, error) {
	now := time.Now()
	k := l.prefix + ":" + key

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(now.Add(-window).UnixMilli(), 10))
	card := pipe.ZCard(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	if card.Val() >= int64(maxAttempts) {
		return false, nil
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	add := l.client.TxPipeline()
	add.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	add.Expire(ctx, k, window)
	if _, err := add.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// NewLimiter builds a Redis-backed limiter and falls back to the
// in-memory window when Redis is unreachable or unconfigured. The error
// reports why the fallback was taken.
func NewLimiter(addr, pass string, db int) (Limiter, error) {
	if addr == "" {
		return NewWindow(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return NewWindow(), err
	}

	return &RedisLimiter{client: client, prefix: "zenpay:rl"}, nil
}

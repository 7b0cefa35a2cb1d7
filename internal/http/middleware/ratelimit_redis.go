package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements sliding-window admission on Redis sorted sets so
// that all service instances agree on per-client counts. Each admitted
// request is a member scored by its instant; expired members are pruned on
// every check.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	window time.Duration
	limit  int
	now    func() time.Time
}

// NewRedisLimiter creates a limiter using the given client. prefix
// namespaces the keys so independent windows (global vs contact) do not
// collide.
func NewRedisLimiter(client redis.Cmdable, prefix string, window time.Duration, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

// Allow prunes expired instants for key, records the request's own instant
// and counts the window in a single transaction. If the count lands over
// the limit the request removes its own instant again, so denied requests
// are never recorded and concurrent requests cannot race past the
// threshold.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + ":" + key
	now := l.now()
	cutoff := now.Add(-l.window)
	member := strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.NewString()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixNano()), Member: member})
	card := pipe.ZCard(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if card.Val() > int64(l.limit) {
		if err := l.client.ZRem(ctx, k, member).Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

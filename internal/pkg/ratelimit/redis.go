package ratelimit

import (
	"context"
	"math"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisLimiter delegates window accounting to redis INCR with a per-window
// TTL, which stays correct across instances.
type RedisLimiter struct {
	rdb *redis.Client
}

func NewRedisLimiter(rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{rdb: rdb}
}

func (l *RedisLimiter) Consume(ctx context.Context, key string, maxRequests int) (Result, error) {
	k := keyPrefix + key

	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, Window).Err(); err != nil {
			return Result{}, err
		}
	}

	if int(count) > maxRequests {
		ttl, err := l.rdb.TTL(ctx, k).Result()
		if err != nil {
			return Result{}, err
		}
		retry := int(math.Ceil(ttl.Seconds()))
		if retry < 1 {
			retry = 1
		}
		return Result{OK: false, RetryAfterSec: retry}, nil
	}

	return Result{OK: true, Remaining: maxInt(0, maxRequests-int(count))}, nil
}

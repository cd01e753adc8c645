package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter serializes read-modify-write cycles with a mutex. Correct
// within a single process only; horizontal deployments need RedisLimiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Consume(_ context.Context, key string, maxRequests int) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(Window)}
		return Result{OK: true, Remaining: maxInt(0, maxRequests-1)}, nil
	}

	if b.count >= maxRequests {
		retry := int(math.Ceil(b.resetAt.Sub(now).Seconds()))
		if retry < 1 {
			retry = 1
		}
		return Result{OK: false, RetryAfterSec: retry}, nil
	}

	b.count++
	return Result{OK: true, Remaining: maxInt(0, maxRequests-b.count)}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

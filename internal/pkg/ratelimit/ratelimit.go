// Package ratelimit implements a fixed 60-second window counter behind a
// store-agnostic interface. Windows reset lazily on first access after
// expiry; there is no background sweeper.
package ratelimit

import (
	"context"
	"time"
)

const Window = time.Minute

// Result is the outcome of consuming one slot from a window.
type Result struct {
	OK            bool `json:"ok"`
	Remaining     int  `json:"remaining"`
	RetryAfterSec int  `json:"retryAfterSec,omitempty"`
}

// Limiter is the injected gate used by the public API surface. Keys are
// API-key ids, optionally suffixed for sub-resources (e.g. "k_abc:plan").
type Limiter interface {
	Consume(ctx context.Context, key string, maxRequests int) (Result, error)
}

// Package ratelimit provides per-key request rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// KeyedLimiter implements per-key token-bucket rate limiting. It admits at
// most burst requests per key within the configured window.
type KeyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewKeyedLimiter creates a limiter allowing requests requests per window
// for each distinct key.
func NewKeyedLimiter(requests int, window time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Every(window / time.Duration(requests)),
		b:        requests,
	}
}

func (kl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	limiter, exists := kl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(kl.r, kl.b)
		kl.limiters[key] = limiter
	}

	return limiter
}

// Allow reports whether the request for key fits within its budget.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.getLimiter(key).Allow()
}

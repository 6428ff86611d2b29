package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound calls per key (one key per platform or host)
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit
	b    int
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(60, time.Minute, 5) -> 60 calls per minute per key, burst of 5
func NewInMemoryLimiter(requests int, per time.Duration, burst int) Limiter {
	r := rate.Inf
	if requests > 0 {
		r = rate.Every(per / time.Duration(requests))
	}
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    r,
		b:    burst,
	}
}

// Wait blocks until a call for key is allowed or ctx is done
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

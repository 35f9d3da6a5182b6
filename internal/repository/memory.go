package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxTrackedKeys = 10000

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter is a per-process token bucket per key: limit tokens
// refilled evenly over window.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	now     func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

func (r *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return false, nil
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		if len(r.entries) >= maxTrackedKeys {
			r.sweepLocked(now, window)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)}
		r.entries[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), nil
}

// sweepLocked drops keys idle for longer than window; their buckets are full.
func (r *MemoryRateLimiter) sweepLocked(now time.Time, window time.Duration) {
	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) > window {
			delete(r.entries, key)
		}
	}
}

func (r *MemoryRateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

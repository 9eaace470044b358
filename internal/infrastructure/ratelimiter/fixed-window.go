package ratelimiter

import (
	"sync"
	"time"
)

// Limiter is the request throttle consumed by the API middleware.
type Limiter interface {
	Allow(source string) (bool, time.Duration)
	Close()
}

type window struct {
	count   int64
	resetAt time.Time
}

// FixedWindowRateLimiter counts requests per source within fixed windows.
// Stale sources are swept every window so the map cannot grow unbounded.
type FixedWindowRateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	limit       int64
	frame       time.Duration
	cleanupTick *time.Ticker
	done        chan struct{}
}

func NewFixedWindowRateLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		windows:     make(map[string]*window),
		limit:       int64(limit),
		frame:       frame,
		cleanupTick: time.NewTicker(frame),
		done:        make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// Allow reports whether the source may proceed and, when throttled, how long
// until its window resets.
func (rl *FixedWindowRateLimiter) Allow(source string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[source]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[source] = &window{count: 1, resetAt: now.Add(rl.frame)}
		return true, 0
	}

	if w.count >= rl.limit {
		return false, time.Until(w.resetAt)
	}

	w.count++
	return true, 0
}

func (rl *FixedWindowRateLimiter) startCleanup() {
	for {
		select {
		case <-rl.cleanupTick.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *FixedWindowRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for source, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, source)
		}
	}
}

func (rl *FixedWindowRateLimiter) Close() {
	close(rl.done)
	rl.cleanupTick.Stop()
}

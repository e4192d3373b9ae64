package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter counts requests per client IP inside a fixed
// window. Every check-and-increment happens under one lock, so concurrent
// bursts cannot overshoot the limit.
type FixedWindowRateLimiter struct {
	mu       sync.Mutex
	counts   map[string]int
	limit    int
	window   time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		counts: make(map[string]int),
		limit:  limit,
		window: window,
		done:   make(chan struct{}),
	}
	go rl.resetLoop()
	return rl
}

// Allow records one request for ip and reports whether it fits in the
// current window. When it does not, the second return value is how long the
// client should wait before retrying.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.counts[ip] >= rl.limit {
		return false, rl.window
	}

	rl.counts[ip]++
	return true, 0
}

// resetLoop clears all client counts at each window boundary until Stop is
// called.
func (rl *FixedWindowRateLimiter) resetLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			rl.counts = make(map[string]int)
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// Stop terminates the reset goroutine. Safe to call more than once; the
// limiter must not be used afterwards.
func (rl *FixedWindowRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}

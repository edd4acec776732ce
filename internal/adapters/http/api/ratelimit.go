package api

import (
	"sync"
	"time"

	"github.com/abeldarick/ASDM-PRONO/internal/policy"
)

// rateLimiter implements the policy's fixed-window budget: each client key
// may spend at most MaxRequests per Window, and the counter resets when a
// new window starts. The policy declares one undifferentiated budget, so
// the window parameters are read once at construction.
type rateLimiter struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	windows map[string]*clientWindow
}

type clientWindow struct {
	start time.Time
	count int
}

func newRateLimiter(pol *policy.Policy) *rateLimiter {
	limit := pol.RateLimitFor("")
	return &rateLimiter{
		window:  limit.Window,
		max:     limit.MaxRequests,
		windows: make(map[string]*clientWindow),
	}
}

// Allow spends one request from the key's budget. When the budget is
// exhausted it reports false and how long until the window resets.
func (l *rateLimiter) Allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &clientWindow{start: now, count: 1}
		l.evictStale(now)
		return true, 0
	}
	if w.count >= l.max {
		return false, w.start.Add(l.window).Sub(now)
	}
	w.count++
	return true, 0
}

// evictStale drops windows that ended, bounding the map. Runs under the
// lock, only when a new window is created.
func (l *rateLimiter) evictStale(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}

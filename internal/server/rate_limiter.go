package server

import (
	"sync"
	"time"
)

// renderLimiter is a fixed-window per-client limiter for the render
// endpoint. Rendering is CPU-bound, so a simple window is enough to keep one
// batch-happy caller from starving the rest.
type renderLimiter struct {
	limit  int
	window time.Duration

	mu    sync.Mutex
	items map[string]*limiterEntry
}

type limiterEntry struct {
	windowStart time.Time
	count       int
}

func newRenderLimiter(limit int, window time.Duration) *renderLimiter {
	return &renderLimiter{
		limit:  limit,
		window: window,
		items:  make(map[string]*limiterEntry),
	}
}

func (r *renderLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.items[key]
	if entry == nil || now.Sub(entry.windowStart) > r.window {
		r.pruneLocked(now)
		entry = &limiterEntry{windowStart: now}
		r.items[key] = entry
	}

	if entry.count >= r.limit {
		return false
	}
	entry.count++
	return true
}

// pruneLocked drops entries whose window has long passed so the map does not
// grow with one entry per client forever. Called with the lock held.
func (r *renderLimiter) pruneLocked(now time.Time) {
	for key, entry := range r.items {
		if now.Sub(entry.windowStart) > 2*r.window {
			delete(r.items, key)
		}
	}
}

// Package limiter provides an in-memory fixed-window request counter used by
// the rate limiting middleware. Counters expire at the end of their window;
// expired entries are dropped lazily on access.
package limiter

import (
	"sync"
	"time"
)

type entry struct {
	count     int
	expiresAt time.Time
}

type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*entry
}

func New(window time.Duration) *Limiter {
	return &Limiter{
		window:  window,
		entries: make(map[string]*entry),
	}
}

// Incr increments the counter for key and returns the new count together with
// the moment the current window resets.
func (l *Limiter) Incr(key string) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &entry{expiresAt: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count, e.expiresAt
}

// Count returns the current counter for key without incrementing it.
func (l *Limiter) Count(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return 0
	}
	return e.count
}

// Purge drops all expired counters. Called periodically so long-idle keys do
// not accumulate.
func (l *Limiter) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.entries {
		if now.After(e.expiresAt) {
			delete(l.entries, key)
		}
	}
}

// Package ratelimit guards payment-initiation attempts with sliding
// window counters, in memory for the client surface and over Redis for
// the HTTP API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window is an in-memory sliding-window attempt counter keyed by action
// category. Entries older than a key's window are pruned on every check,
// so a key's sequence never holds more than its attempt cap. Keys are
// independent of each other.
type Window struct {
	mu   sync.Mutex
	hits map[string]*bucket
	now  func() time.Time
}

type bucket struct {
	stamps []time.Time
	window time.Duration
}

// NewWindow creates an empty limiter.
func NewWindow() *Window {
	return &Window{
		hits: make(map[string]*bucket),
		now:  time.Now,
	}
}

// Check prunes expired entries for key, then records and allows a new
// attempt only while fewer than maxAttempts remain inside window.
func (w *Window) Check(key string, maxAttempts int, window time.Duration) bool {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.hits[key]
	if !ok {
		b = &bucket{}
		w.hits[key] = b
	}
	b.window = window
	b.prune(now)

	if len(b.stamps) >= maxAttempts {
		return false
	}
	b.stamps = append(b.stamps, now)
	return true
}

// ResetTimeSeconds reports the rounded-up seconds until the oldest
// retained attempt for key leaves its window, for user-facing cooldown
// messages. Zero when the key holds no retained attempts.
func (w *Window) ResetTimeSeconds(key string) int {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.hits[key]
	if !ok {
		return 0
	}
	b.prune(now)
	if len(b.stamps) == 0 {
		return 0
	}
	remaining := b.stamps[0].Add(b.window).Sub(now)
	if remaining <= 0 {
		return 0
	}
	secs := int(remaining / time.Second)
	if remaining%time.Second != 0 {
		secs++
	}
	return secs
}

// Allow adapts Check to the Limiter interface shared with the Redis
// variant. The context is unused; the in-memory window cannot fail.
func (w *Window) Allow(_ context.Context, key string, maxAttempts int, window time.Duration) (bool, error) {
	return w.Check(key, maxAttempts, window), nil
}

func (b *bucket) prune(now time.Time) {
	cutoff := now.Add(-b.window)
	kept := b.stamps[:0]
	for _, ts := range b.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	b.stamps = kept
}

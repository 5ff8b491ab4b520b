package store

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a sliding-window rate limiter held in process memory: a
// client is admitted only while its trailing-window admission count stays
// under max. It allows bursts up to max and does not smooth rate over time.
//
// Windows are pruned lazily, only when the same key is checked again. The
// key table itself is never swept, so memory grows with the number of
// distinct clients seen over the process lifetime. Acceptable for a
// single-instance deployment; use the Redis-backed limiter otherwise.
type MemoryLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time

	// now is swapped in tests to step across window boundaries.
	now func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Admit records and allows the request unless the client already holds max
// admissions inside the trailing window. Rejected requests are not recorded
// and do not extend the window. The error is always nil; it exists to
// satisfy the port shared with the Redis backend.
func (l *MemoryLimiter) Admit(ctx context.Context, clientKey string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.hits[clientKey][:0]
	for _, t := range l.hits[clientKey] {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.hits[clientKey] = kept
		return false, nil
	}
	l.hits[clientKey] = append(kept, now)
	return true, nil
}

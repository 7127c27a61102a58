package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

// Limiter is a sliding-window rate limiter keyed by an opaque identity,
// typically the client IP. An identity may make at most `limit` admitted
// requests within any trailing `window`; denied attempts are not recorded
// and do not extend the window.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string][]time.Time
	now    func() time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Admit reports whether the identity may proceed and, if so, records the
// request. Timestamps older than the window are purged first, which keeps
// each identity's slice bounded by the limit.
func (l *Limiter) Admit(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.seen[identity][:0]
	for _, ts := range l.seen[identity] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		l.seen[identity] = recent
		return false
	}

	l.seen[identity] = append(recent, now)
	return true
}

package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	l := NewLimiter(limit, window)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestAdmit_AllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Admit("203.0.113.7"), "request %d should be admitted", i+1)
	}
	assert.False(t, l.Admit("203.0.113.7"), "11th request in window must be denied")
}

func TestAdmit_DenialIsNotRecorded(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	assert.True(t, l.Admit("ip"))
	assert.True(t, l.Admit("ip"))

	// Hammering while denied must not push the window forward.
	for i := 0; i < 5; i++ {
		assert.False(t, l.Admit("ip"))
	}

	*clock = clock.Add(61 * time.Second)
	assert.True(t, l.Admit("ip"), "window elapsed, admission should resume")
}

func TestAdmit_SlidingWindowExpiry(t *testing.T) {
	l, clock := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Admit("ip"))
		*clock = clock.Add(5 * time.Second)
	}
	// 50s elapsed; the first admission is still inside the window.
	assert.False(t, l.Admit("ip"))

	// 11s later the earliest timestamps have aged out.
	*clock = clock.Add(11 * time.Second)
	assert.True(t, l.Admit("ip"))
}

func TestAdmit_IdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Admit("a"))
	assert.False(t, l.Admit("a"))
	assert.True(t, l.Admit("b"))
}

func TestAdmit_WindowStaysBounded(t *testing.T) {
	l, clock := newTestLimiter(10, time.Minute)

	for i := 0; i < 200; i++ {
		l.Admit("ip")
		*clock = clock.Add(time.Second)
	}
	assert.LessOrEqual(t, len(l.seen["ip"]), 10)
}

package engine

import (
	"sync"
	"time"
)

// Throttle rejects events from the same user arriving faster than the
// configured window. The map holds one timestamp per ever-seen user and is
// never evicted; it only resets on process restart.
type Throttle struct {
	mu     sync.Mutex
	window time.Duration
	last   map[int64]time.Time
	now    func() time.Time
}

func NewThrottle(window time.Duration) *Throttle {
	return &Throttle{
		window: window,
		last:   make(map[int64]time.Time),
		now:    time.Now,
	}
}

// Allow accepts the event and records its time, or rejects it when the
// previous accepted event is newer than the window.
func (t *Throttle) Allow(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.last[userID]; ok && now.Sub(last) < t.window {
		return false
	}
	t.last[userID] = now
	return true
}

package goKiosk

import (
	"sync"
	"time"
)

// Clock supplies the current time. Injected so the latch tests without real
// timers; production uses time.Now.
type Clock func() time.Time

// expiryLatch collapses a burst of 401 responses into a single externally
// visible side effect. It is a debounced gate on a monotonic timestamp, not
// a timer: nothing resets it except the passage of the cooldown.
type expiryLatch struct {
	mu       sync.Mutex
	clock    Clock
	cooldown time.Duration
	last     time.Time
}

func newExpiryLatch(cooldown time.Duration, clock Clock) *expiryLatch {
	if clock == nil {
		clock = time.Now
	}
	return &expiryLatch{
		clock:    clock,
		cooldown: cooldown,
	}
}

// TryAcquire reports whether the caller owns the side effect. The first
// acquisition within a cooldown window wins; later ones are suppressed until
// the window elapses. Acquisition does not extend the window: a 401 burst
// longer than the cooldown fires again at the window boundary.
func (l *expiryLatch) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if !l.last.IsZero() && now.Sub(l.last) < l.cooldown {
		return false
	}
	l.last = now
	return true
}

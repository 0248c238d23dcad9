package splitter

import (
	"sync"
	"time"
)

// Breaker is the binary circuit breaker guarding the remote splitter: one
// failure opens it for a fixed cool-down, after which the next call simply
// retries. No half-open probe, no failure counter. State is process-local;
// redundant remote calls while workers re-synchronize are harmless.
type Breaker struct {
	mu        sync.Mutex
	openUntil time.Time
	cooldown  time.Duration
	now       func() time.Time
}

// NewBreaker returns a closed breaker with the given cool-down window.
func NewBreaker(cooldown time.Duration) *Breaker {
	return &Breaker{cooldown: cooldown, now: time.Now}
}

// Open reports whether the breaker currently short-circuits remote calls.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now().Before(b.openUntil)
}

// Trip opens the breaker for one cool-down window.
func (b *Breaker) Trip() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openUntil = b.now().Add(b.cooldown)
}

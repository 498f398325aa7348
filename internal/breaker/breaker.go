// Package breaker tracks per-provider health with exponential-backoff
// cooldowns and rotates a fixed pool of providers over the healthy ones.
package breaker

import (
	"sync"
	"time"
)

const (
	baseCooldown = 30 * time.Second
	maxCooldown  = 10 * time.Minute
)

// Breaker guards a single provider. A failure opens a cooldown window that
// doubles with every consecutive failure; a success resets everything.
// Recovery is time-based: once the window elapses the breaker is healthy
// again without an explicit success call.
type Breaker struct {
	mu            sync.Mutex
	failCount     int
	cooldownUntil time.Time

	now func() time.Time
}

// New creates a healthy breaker.
func New() *Breaker {
	return &Breaker{now: time.Now}
}

// Healthy reports whether the provider may be called right now.
func (b *Breaker) Healthy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.now().Before(b.cooldownUntil)
}

// RecordFailure extends the cooldown window: min(30s * 2^(n-1), 10m) for
// the n-th consecutive failure.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCount++
	b.cooldownUntil = b.now().Add(cooldownFor(b.failCount))
}

// RecordSuccess returns the breaker to healthy immediately, discarding all
// backoff history.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCount = 0
	b.cooldownUntil = time.Time{}
}

func cooldownFor(failures int) time.Duration {
	d := baseCooldown
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= maxCooldown {
			return maxCooldown
		}
	}
	return d
}

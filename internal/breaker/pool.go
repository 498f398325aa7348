package breaker

import "sync"

// Pool rotates over a fixed, ordered set of provider identifiers, skipping
// the ones whose breaker is cooling down. The identifier list never changes
// after construction; one pool is built at process start and shared by every
// extraction.
type Pool struct {
	mu     sync.Mutex
	ids    []string
	cursor int

	// breakers is read-only after construction; each breaker carries its
	// own lock.
	breakers map[string]*Breaker
}

// NewPool creates a pool over the given ordered provider identifiers.
func NewPool(ids []string) *Pool {
	p := &Pool{
		ids:      append([]string(nil), ids...),
		breakers: make(map[string]*Breaker, len(ids)),
	}
	for _, id := range p.ids {
		p.breakers[id] = New()
	}
	return p
}

// NextHealthy returns the next healthy provider in round-robin order. The
// cursor advances past every identifier handed out, whether or not it ends
// up succeeding, which keeps rotation fair among the healthy providers.
// It reports false when every provider is cooling down.
func (p *Pool) NextHealthy() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.ids)
	for i := 0; i < n; i++ {
		idx := (p.cursor + i) % n
		id := p.ids[idx]
		if p.breakers[id].Healthy() {
			p.cursor = (idx + 1) % n
			return id, true
		}
	}
	return "", false
}

// RecordSuccess marks the provider healthy. Unknown identifiers are ignored.
func (p *Pool) RecordSuccess(id string) {
	if b, ok := p.breakers[id]; ok {
		b.RecordSuccess()
	}
}

// RecordFailure penalizes the provider's breaker. Unknown identifiers are
// ignored.
func (p *Pool) RecordFailure(id string) {
	if b, ok := p.breakers[id]; ok {
		b.RecordFailure()
	}
}

// Size returns the number of providers in the pool.
func (p *Pool) Size() int {
	return len(p.ids)
}

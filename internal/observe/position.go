package observe

import (
	"sync"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

// PositionSource supplies the latest known observer position. Current is
// absent until the first update. Changes wakes the observation loop; it is
// a latest-wins channel sized for a single consumer, so a slow reader only
// ever misses intermediate positions, never the newest one.
type PositionSource interface {
	Current() (geo.Position, bool)
	Changes() <-chan geo.Position
}

// PositionValue is the concrete PositionSource fed by transport adapters.
type PositionValue struct {
	mu  sync.Mutex
	pos geo.Position
	has bool
	ch  chan geo.Position
}

func NewPositionValue() *PositionValue {
	return &PositionValue{ch: make(chan geo.Position, 1)}
}

// Update records a new observer position and signals the change.
func (p *PositionValue) Update(pos geo.Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
	p.has = true

	// Replace any unconsumed signal with the newest position. Sends happen
	// only under the lock, so the channel is guaranteed empty here.
	select {
	case <-p.ch:
	default:
	}
	p.ch <- pos
}

func (p *PositionValue) Current() (geo.Position, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, p.has
}

func (p *PositionValue) Changes() <-chan geo.Position {
	return p.ch
}

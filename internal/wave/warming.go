package wave

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

const (
	// warmingDuration is the lead window before a hit during which the
	// anticipatory cue plays.
	warmingDuration = 30 * time.Second

	// warnBeforeHitLead separates "about to be hit" from plain warming.
	warnBeforeHitLead = 5 * time.Second
)

// Warming derives the pre-hit lead window from a wave's hit-time prediction.
// It is a composed collaborator of the wave, not a wave kind of its own.
type Warming struct {
	wave  Wave
	clock clockwork.Clock
}

func NewWarming(wave Wave, clock clockwork.Clock) *Warming {
	return &Warming{wave: wave, clock: clock}
}

// Duration is the fixed length of the warming cue.
func (w *Warming) Duration() time.Duration { return warmingDuration }

// UserWarmingStart returns the instant the warming cue should begin for the
// observer: the predicted hit minus the cue length minus the warn lead.
// Absent whenever the hit time is absent.
func (w *Warming) UserWarmingStart(ctx context.Context, pos geo.Position) (time.Time, bool) {
	hit, ok := w.wave.UserHitTime(ctx, pos)
	if !ok {
		return time.Time{}, false
	}
	return hit.Add(-warmingDuration - warnBeforeHitLead), true
}

// IsUserWarmingStarted reports whether the warming window has opened for the
// observer. False when no hit time can be predicted.
func (w *Warming) IsUserWarmingStarted(ctx context.Context, pos geo.Position) bool {
	start, ok := w.UserWarmingStart(ctx, pos)
	return ok && !w.clock.Now().Before(start)
}

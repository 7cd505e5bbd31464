package observe

import (
	"math"
	"time"
)

const (
	progressionThreshold = 0.1  // percentage points
	ratioThreshold       = 0.01 // fraction of area width

	timeBeforeHitThreshold = time.Second
	// Within the critical window the cue needs audio-sync accuracy.
	timeBeforeHitCritical          = 50 * time.Millisecond
	timeBeforeHitCriticalWindowMax = 2 * time.Second
)

// throttle suppresses observable updates whose change from the last emitted
// value is below the per-field threshold. The first value always passes.
type throttle struct {
	hasProgression bool
	progression    float64

	hasRatio bool
	ratio    float64

	hasTimeBeforeHit bool
	timeBeforeHit    time.Duration
}

func (t *throttle) progressionChanged(v float64) bool {
	if t.hasProgression && math.Abs(v-t.progression) < progressionThreshold {
		return false
	}
	t.hasProgression = true
	t.progression = v
	return true
}

func (t *throttle) ratioChanged(v float64) bool {
	if t.hasRatio && math.Abs(v-t.ratio) < ratioThreshold {
		return false
	}
	t.hasRatio = true
	t.ratio = v
	return true
}

func (t *throttle) timeBeforeHitChanged(v time.Duration) bool {
	threshold := timeBeforeHitThreshold
	if v > 0 && v <= timeBeforeHitCriticalWindowMax {
		threshold = timeBeforeHitCritical
	}
	if t.hasTimeBeforeHit && absDuration(v-t.timeBeforeHit) < threshold {
		return false
	}
	t.hasTimeBeforeHit = true
	t.timeBeforeHit = v
	return true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

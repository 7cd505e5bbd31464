package observe

import "time"

// PollStop tells the loop to stop periodic ticks entirely. Position changes
// and simulation signals still wake it.
const PollStop time.Duration = -1

// pollInterval picks the next tick delay from the event timeline. Hit-time
// rules win over start-time rules: once a hit is predicted, cadence follows
// the hit, tightening to audio-sync granularity just before it and stopping
// once it has passed.
func pollInterval(untilStart time.Duration, untilHit time.Duration, hitKnown bool, running bool) time.Duration {
	if hitKnown {
		switch {
		case untilHit < 0:
			return PollStop
		case running && untilHit < time.Second:
			return 50 * time.Millisecond
		case untilHit < 5*time.Second:
			return 200 * time.Millisecond
		}
	}

	if running {
		return 500 * time.Millisecond
	}

	switch {
	case untilStart > 65*time.Minute:
		return time.Hour
	case untilStart > 5*time.Minute+30*time.Second:
		return 5 * time.Minute
	case untilStart > 35*time.Second:
		return time.Second
	case untilStart >= 0:
		return 500 * time.Millisecond
	}

	return 30 * time.Second
}

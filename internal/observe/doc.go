// Package observe runs the per-event observation loop: one background
// goroutine per event that merges periodic ticks, observer-position changes,
// and simulation-override signals into a single update pipeline, evaluates
// the wave model once per combined event, and pushes the results through
// throttled multi-subscriber observables.
//
// The tick cadence adapts to the event timeline: hourly while the event is
// far off, down to 50ms in the audio-sync window just before a predicted
// hit, and stopped entirely once the hit has passed (position changes and
// simulation signals still wake the loop).
//
// Any panic while computing a tick is recovered at the tick boundary and
// logged; the loop continues with the previous known-good values.
package observe

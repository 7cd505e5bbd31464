// Package wave models a wave event: a front sweeping at constant speed across
// a bounded geographic area in one of two opposing cardinal directions.
//
// # Timing Model
//
// The wave starts at the event's start instant on the area's starting edge
// (the west edge for an eastbound wave, the east edge for a westbound one)
// and advances at the event speed in meters per second. Because a degree of
// longitude narrows away from the equator, the front's position in degrees is
// derived from the distance traveled as a fraction of the bounding box's
// metric width at a given latitude ("earth-adapted" longitude).
//
// Total wave duration is the metric width of the bounding box at its
// widest-in-latitude row divided by the speed. Before polygon data resolves,
// the event-supplied approximate duration is used instead.
//
// # Caching
//
// The bounding box, the total duration, and the last {position, hit instant}
// pair are cached lazily. The hit cache is keyed on the observer position and
// only answers for positions within about a meter of the cached one, so a
// near-stationary observer does not pay for repeated trigonometry. All three
// caches are dropped by ClearDurationCache, which the polygon data
// collaborator calls after a reload. There is no time-based expiry.
//
// # Failure Semantics
//
// Getters that depend on an observer position or on loaded polygons return
// an absent value (ok == false) when preconditions are unmet: no position,
// observer outside the area, event not running. Computing a bounding box
// over a genuinely empty loaded area is a caller contract violation and
// surfaces as an explicit error.
package wave

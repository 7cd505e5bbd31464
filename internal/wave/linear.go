package wave

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

// positionEpsilonDegrees is the hit-cache key tolerance: about one meter at
// the equator. An observer moving less than this reuses the cached instant.
const positionEpsilonDegrees = 1e-5

// hitEntry caches the predicted hit instant for one observer position.
type hitEntry struct {
	position geo.Position
	instant  time.Time
}

// Linear is a wave front moving along lines of constant longitude at
// constant speed. It implements Wave.
type Linear struct {
	event  Event
	area   AreaProvider
	clock  clockwork.Clock
	logger *slog.Logger

	// Caches are written only under mu. The observation engine serializes
	// calls per event, but nothing stops a second caller.
	mu       sync.Mutex
	bbox     geo.BoundingBox
	duration time.Duration
	hit      *hitEntry
}

// NewLinear creates a linear wave for one event. The wave lives for the
// event's lifetime; caches populate lazily and survive engine restarts.
func NewLinear(event Event, area AreaProvider, clock clockwork.Clock, logger *slog.Logger) *Linear {
	return &Linear{
		event:  event,
		area:   area,
		clock:  clock,
		logger: logger,
	}
}

func (w *Linear) Event() Event { return w.event }

// Status derives the event lifecycle state from the clock.
func (w *Linear) Status() Status {
	if w.event.StartTime.IsZero() {
		return StatusUndefined
	}
	now := w.clock.Now()
	switch {
	case !w.event.EndTime.IsZero() && !now.Before(w.event.EndTime):
		return StatusDone
	case !now.Before(w.event.StartTime):
		return StatusRunning
	case w.event.StartTime.Sub(now) <= soonWindow:
		return StatusSoon
	default:
		return StatusNext
	}
}

// Duration returns the total time the wave needs to sweep the area: the
// metric width of the bounding box at its widest-in-latitude row divided by
// the wave speed. Falls back to the event-supplied approximation while the
// bounding box is unresolved. The computed value is cached until
// ClearDurationCache.
func (w *Linear) Duration(ctx context.Context) (time.Duration, error) {
	w.mu.Lock()
	if w.duration > 0 {
		d := w.duration
		w.mu.Unlock()
		return d, nil
	}
	w.mu.Unlock()

	bbox, err := w.boundingBox(ctx)
	if err != nil {
		return 0, err
	}
	if bbox.Width() == 0 && bbox.Height() == 0 {
		return w.event.ApproxDuration, nil
	}

	lat := bbox.WidestLatitude()
	width := geo.Haversine(
		geo.Position{Lat: lat, Lng: bbox.SouthWest.Lng},
		geo.Position{Lat: lat, Lng: bbox.NorthEast.Lng},
	)
	d := time.Duration(width / w.event.Speed * float64(time.Second))

	w.mu.Lock()
	w.duration = d
	w.mu.Unlock()
	return d, nil
}

// WavePolygons splits the event area at the front's current longitude and
// partitions the halves into traversed and remaining according to direction.
// Returns nil while the event is not running, before any time has elapsed,
// when polygon data is unavailable, or when both resulting sets are empty.
func (w *Linear) WavePolygons(ctx context.Context) *WavePolygons {
	if w.Status() != StatusRunning {
		return nil
	}
	now := w.clock.Now()
	if !now.After(w.event.StartTime) {
		return nil
	}

	area, err := w.area.Polygons(ctx)
	if err != nil || len(area) == 0 {
		return nil
	}
	bbox, err := w.boundingBox(ctx)
	if err != nil || bbox.IsZero() {
		return nil
	}

	cut, ok := w.ClosestWaveLongitude(ctx, bbox.WidestLatitude())
	if !ok {
		return nil
	}

	var traversed, remaining geo.Area
	for _, polygon := range area {
		split := geo.SplitPolygonByLongitude(polygon, cut)
		if w.event.Direction == DirectionEast {
			traversed = append(traversed, split.Left...)
			remaining = append(remaining, split.Right...)
		} else {
			traversed = append(traversed, split.Right...)
			remaining = append(remaining, split.Left...)
		}
	}
	if len(traversed) == 0 && len(remaining) == 0 {
		return nil
	}

	return &WavePolygons{Timestamp: now, Traversed: traversed, Remaining: remaining}
}

// Progression reports the percentage of the wave duration elapsed: 0 before
// the wave runs, 100 once the event has concluded, clamped to 100 between.
func (w *Linear) Progression(ctx context.Context) float64 {
	switch w.Status() {
	case StatusDone:
		return 100
	case StatusRunning:
	default:
		return 0
	}

	duration, err := w.Duration(ctx)
	if err != nil || duration <= 0 {
		return 0
	}
	elapsed := w.clock.Now().Sub(w.event.StartTime)
	return math.Min(100, elapsed.Seconds()/duration.Seconds()*100)
}

// UserHitTime predicts the instant the front crosses the given observer
// position. Absent when the observer is outside the area or polygon data is
// unavailable. A cached prediction is reused while the observer stays within
// about a meter of the cached position.
func (w *Linear) UserHitTime(ctx context.Context, pos geo.Position) (time.Time, bool) {
	in, err := w.UserIsInArea(ctx, pos)
	if err != nil || !in {
		return time.Time{}, false
	}

	w.mu.Lock()
	if w.hit != nil && withinEpsilon(w.hit.position, pos) {
		instant := w.hit.instant
		w.mu.Unlock()
		return instant, true
	}
	w.mu.Unlock()

	bbox, err := w.boundingBox(ctx)
	if err != nil || bbox.IsZero() {
		return time.Time{}, false
	}

	edge := w.startEdgeLng(bbox)
	distance := geo.Haversine(geo.Position{Lat: pos.Lat, Lng: edge}, pos)
	secondsToReach := distance / w.event.Speed
	instant := w.event.StartTime.Add(time.Duration(secondsToReach * float64(time.Second)))

	w.mu.Lock()
	w.hit = &hitEntry{position: pos, instant: instant}
	w.mu.Unlock()
	return instant, true
}

// HasUserBeenHit reports whether a hit instant exists for the position and
// lies at or before now.
func (w *Linear) HasUserBeenHit(ctx context.Context, pos geo.Position) bool {
	hit, ok := w.UserHitTime(ctx, pos)
	return ok && !hit.After(w.clock.Now())
}

// UserPositionToWaveRatio reports the observer's longitudinal offset from
// the wave's starting edge as a fraction of the area's width, clamped to
// [0, 1]. Absent under the same preconditions as UserHitTime.
func (w *Linear) UserPositionToWaveRatio(ctx context.Context, pos geo.Position) (float64, bool) {
	in, err := w.UserIsInArea(ctx, pos)
	if err != nil || !in {
		return 0, false
	}
	bbox, err := w.boundingBox(ctx)
	if err != nil || bbox.IsZero() || bbox.Width() <= 0 {
		return 0, false
	}

	var offset float64
	if w.event.Direction == DirectionEast {
		offset = pos.Lng - bbox.SouthWest.Lng
	} else {
		offset = bbox.NorthEast.Lng - pos.Lng
	}
	return math.Max(0, math.Min(1, offset/bbox.Width())), true
}

// ClosestWaveLongitude returns the front's current longitude at the given
// latitude: the elapsed travel distance as a fraction of the box's metric
// width at that latitude, offset in degrees from the starting edge.
func (w *Linear) ClosestWaveLongitude(ctx context.Context, lat float64) (float64, bool) {
	bbox, err := w.boundingBox(ctx)
	if err != nil || bbox.IsZero() {
		return 0, false
	}
	width := geo.Haversine(
		geo.Position{Lat: lat, Lng: bbox.SouthWest.Lng},
		geo.Position{Lat: lat, Lng: bbox.NorthEast.Lng},
	)
	if width <= 0 {
		return 0, false
	}

	elapsed := w.clock.Now().Sub(w.event.StartTime)
	if elapsed < 0 {
		elapsed = 0
	}
	traveled := w.event.Speed * elapsed.Seconds()
	fraction := math.Min(1, traveled/width)

	if w.event.Direction == DirectionEast {
		return bbox.SouthWest.Lng + fraction*bbox.Width(), true
	}
	return bbox.NorthEast.Lng - fraction*bbox.Width(), true
}

// UserIsInArea tests the position against the loaded polygons. Returns
// ErrAreaNotLoaded while no polygon data is available so callers can keep
// their previous answer instead of flipping to false.
func (w *Linear) UserIsInArea(ctx context.Context, pos geo.Position) (bool, error) {
	area, err := w.area.Polygons(ctx)
	if err != nil {
		return false, err
	}
	if len(area) == 0 {
		return false, ErrAreaNotLoaded
	}
	return geo.IsPointInArea(pos, area), nil
}

// ClearDurationCache drops the duration, bounding-box, and hit-time caches.
// The polygon data collaborator calls this after a reload so stale
// geometry-derived values are not reused.
func (w *Linear) ClearDurationCache() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.duration = 0
	w.bbox = geo.BoundingBox{}
	w.hit = nil
	w.logger.Debug("wave caches cleared", "event_id", w.event.ID)
}

// boundingBox resolves and caches the area's bounding box. A zero box (area
// not yet loaded) is returned but not cached.
func (w *Linear) boundingBox(ctx context.Context) (geo.BoundingBox, error) {
	w.mu.Lock()
	if !w.bbox.IsZero() {
		bbox := w.bbox
		w.mu.Unlock()
		return bbox, nil
	}
	w.mu.Unlock()

	bbox, err := w.area.BoundingBox(ctx)
	if err != nil {
		return geo.BoundingBox{}, err
	}
	if !bbox.IsZero() {
		w.mu.Lock()
		w.bbox = bbox
		w.mu.Unlock()
	}
	return bbox, nil
}

// startEdgeLng returns the longitude of the edge the wave originates from.
func (w *Linear) startEdgeLng(bbox geo.BoundingBox) float64 {
	if w.event.Direction == DirectionEast {
		return bbox.SouthWest.Lng
	}
	return bbox.NorthEast.Lng
}

func withinEpsilon(a, b geo.Position) bool {
	return math.Abs(a.Lat-b.Lat) <= positionEpsilonDegrees &&
		math.Abs(a.Lng-b.Lng) <= positionEpsilonDegrees
}

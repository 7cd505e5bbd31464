package wave

import (
	"context"
	"errors"
	"time"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

// Direction is the cardinal direction a wave front travels in.
type Direction int

const (
	DirectionEast Direction = iota
	DirectionWest
)

func (d Direction) String() string {
	if d == DirectionWest {
		return "west"
	}
	return "east"
}

// ParseDirection converts a config string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "east":
		return DirectionEast, nil
	case "west":
		return DirectionWest, nil
	default:
		return 0, errors.New("direction must be \"east\" or \"west\"")
	}
}

// Status is the lifecycle state of a wave event.
type Status int

const (
	StatusUndefined Status = iota
	StatusNext
	StatusSoon
	StatusRunning
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusNext:
		return "next"
	case StatusSoon:
		return "soon"
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	default:
		return "undefined"
	}
}

// soonWindow is how close to the start an upcoming event switches from
// "next" to "soon". Aligned with the outermost adaptive-polling boundary.
const soonWindow = 65 * time.Minute

// Event holds the static parameters of one wave event.
type Event struct {
	ID        string
	Speed     float64 // meters per second
	Direction Direction
	StartTime time.Time
	EndTime   time.Time

	// ApproxDuration is the event-supplied estimate used before the area's
	// polygons have loaded and a real duration can be computed.
	ApproxDuration time.Duration

	// Timezone is the IANA name of the event's local timezone, used only
	// for display formatting.
	Timezone string
}

// AreaProvider supplies the event's polygon data. Implementations load from
// an external source and may be empty prior to first load.
type AreaProvider interface {
	Polygons(ctx context.Context) (geo.Area, error)
	BoundingBox(ctx context.Context) (geo.BoundingBox, error)
}

// ErrAreaNotLoaded reports that polygon data is not yet available. Callers
// treat it as "not yet known", not as failure.
var ErrAreaNotLoaded = errors.New("wave: area polygons not loaded")

// WavePolygons is a snapshot of the area split by the wave front. It is
// recomputed on each evaluation and never mutated in place.
type WavePolygons struct {
	Timestamp time.Time
	Traversed geo.Area
	Remaining geo.Area
}

// Wave is the capability interface of a wave kind. Linear is the only
// implementation today; a future radial wave would provide the same surface.
type Wave interface {
	Event() Event
	Status() Status
	Duration(ctx context.Context) (time.Duration, error)
	WavePolygons(ctx context.Context) *WavePolygons
	Progression(ctx context.Context) float64
	UserHitTime(ctx context.Context, pos geo.Position) (time.Time, bool)
	HasUserBeenHit(ctx context.Context, pos geo.Position) bool
	UserPositionToWaveRatio(ctx context.Context, pos geo.Position) (float64, bool)
	ClosestWaveLongitude(ctx context.Context, lat float64) (float64, bool)
	UserIsInArea(ctx context.Context, pos geo.Position) (bool, error)
	ClearDurationCache()
}

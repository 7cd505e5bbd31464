// Command simulate replays a wave event offline under a fake clock and
// prints the timeline: status, progression, and front longitude, plus the
// predicted hit for an optional observer position.
//
// Usage:
//
//	go run ./cmd/simulate \
//	  -area data/area.geojson \
//	  -speed 340 -direction east \
//	  -observer -lat 48.1 -lng -4.5 \
//	  -steps 20
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/worldwidewaves/wave-engine/internal/adapter/geojson"
	"github.com/worldwidewaves/wave-engine/internal/geo"
	"github.com/worldwidewaves/wave-engine/internal/wave"
)

var simulationStart = time.Date(2026, time.June, 21, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	areaPath := flag.String("area", "", "path to the area GeoJSON file")
	speed := flag.Float64("speed", 340, "wave speed in meters per second")
	directionStr := flag.String("direction", "east", "wave direction (east or west)")
	hasObserver := flag.Bool("observer", false, "evaluate the observer position given by -lat/-lng")
	lat := flag.Float64("lat", 0, "observer latitude")
	lng := flag.Float64("lng", 0, "observer longitude")
	steps := flag.Int("steps", 20, "number of timeline rows")
	flag.Parse()

	if *areaPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -area")
	}

	direction, err := wave.ParseDirection(*directionStr)
	if err != nil {
		return err
	}

	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(simulationStart)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	provider := geojson.NewProvider(*areaPath, logger)
	bbox, err := provider.BoundingBox(ctx)
	if err != nil {
		return err
	}

	event := wave.Event{
		ID:        "simulation",
		Speed:     *speed,
		Direction: direction,
		StartTime: simulationStart,
		Timezone:  "UTC",
	}

	// First pass computes the sweep duration, second pass pins the end time
	// so the timeline terminates in the done state.
	duration, err := wave.NewLinear(event, provider, clock, logger).Duration(ctx)
	if err != nil {
		return err
	}
	event.EndTime = simulationStart.Add(duration)
	w := wave.NewLinear(event, provider, clock, logger)

	fmt.Printf("area bbox: sw=(%.4f, %.4f) ne=(%.4f, %.4f)\n",
		bbox.SouthWest.Lat, bbox.SouthWest.Lng, bbox.NorthEast.Lat, bbox.NorthEast.Lng)
	fmt.Printf("wave: %.1f m/s %s, duration %s\n\n", *speed, direction, duration.Round(time.Second))

	if *hasObserver {
		printObserver(ctx, w, clock, geo.Position{Lat: *lat, Lng: *lng})
	}

	printTimeline(ctx, w, clock, bbox.WidestLatitude(), duration, *steps)
	return nil
}

func printObserver(ctx context.Context, w *wave.Linear, clock clockwork.Clock, pos geo.Position) {
	in, err := w.UserIsInArea(ctx, pos)
	if err != nil || !in {
		fmt.Printf("observer (%.4f, %.4f): outside the area\n\n", pos.Lat, pos.Lng)
		return
	}

	warming := wave.NewWarming(w, clock)
	hit, _ := w.UserHitTime(ctx, pos)
	ratio, _ := w.UserPositionToWaveRatio(ctx, pos)
	warmingStart, _ := warming.UserWarmingStart(ctx, pos)

	fmt.Printf("observer (%.4f, %.4f):\n", pos.Lat, pos.Lng)
	fmt.Printf("  position ratio: %.3f\n", ratio)
	fmt.Printf("  warming starts: %s\n", warmingStart.Format(time.RFC3339))
	fmt.Printf("  hit at:         %s\n\n", hit.Format(time.RFC3339))
}

func printTimeline(ctx context.Context, w *wave.Linear, clock *clockwork.FakeClock, frontLat float64, duration time.Duration, steps int) {
	step := duration / time.Duration(steps)

	fmt.Println("elapsed      status    progression  front_lng")
	for i := 0; i <= steps; i++ {
		elapsed := time.Duration(i) * step
		front := "-"
		if lng, ok := w.ClosestWaveLongitude(ctx, frontLat); ok {
			front = fmt.Sprintf("%.4f", lng)
		}
		fmt.Printf("%-12s %-9s %10.1f%%  %s\n",
			elapsed.Round(time.Second), w.Status(), w.Progression(ctx), front)
		clock.Advance(step)
	}
}

// Command genarea generates a synthetic event area as a GeoJSON
// FeatureCollection. The east and west edges get a sinusoidal wobble so the
// area exercises the polygon splitter with something less trivial than a
// rectangle.
//
// Usage:
//
//	go run ./cmd/genarea \
//	  -out data/area.geojson \
//	  -south 47.5 -west -5.2 -north 48.9 -east -3.0 \
//	  -points 24
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the GeoJSON file")
	south := flag.Float64("south", 47.5, "southern latitude bound")
	west := flag.Float64("west", -5.2, "western longitude bound")
	north := flag.Float64("north", 48.9, "northern latitude bound")
	east := flag.Float64("east", -3.0, "eastern longitude bound")
	points := flag.Int("points", 24, "vertices per wobbled edge")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *south >= *north || *west >= *east {
		return fmt.Errorf("bounds must satisfy south < north and west < east")
	}
	if *points < 2 {
		return fmt.Errorf("-points must be at least 2")
	}

	polygon := buildPolygon(*south, *west, *north, *east, *points)

	doc, err := geo.PolygonsToGeoJSON(geo.Area{polygon})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	log.Printf("wrote %s: %d vertices, bounds (%.4f, %.4f) to (%.4f, %.4f)",
		*out, len(polygon), *south, *west, *north, *east)
	return nil
}

// buildPolygon walks the west edge north and the east edge south, wobbling
// each edge's longitude by a tenth of the area width.
func buildPolygon(south, west, north, east float64, points int) geo.Polygon {
	width := east - west
	height := north - south
	wobble := width / 10

	polygon := make(geo.Polygon, 0, 2*points+1)

	for i := 0; i < points; i++ {
		frac := float64(i) / float64(points-1)
		lat := south + frac*height
		lng := west + wobble*math.Sin(frac*3*math.Pi)
		polygon = append(polygon, geo.Position{Lat: lat, Lng: lng})
	}

	for i := 0; i < points; i++ {
		frac := float64(i) / float64(points-1)
		lat := north - frac*height
		lng := east + wobble*math.Sin(frac*2*math.Pi)
		polygon = append(polygon, geo.Position{Lat: lat, Lng: lng})
	}

	// Close the ring.
	polygon = append(polygon, polygon[0])
	return polygon
}

package geo

import (
	"encoding/json"
	"fmt"
)

// GeoJSON carrier types. Coordinates follow the GeoJSON convention of
// (longitude, latitude) order, the reverse of Position.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geometry       `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// PolygonsToGeoJSON serializes an area as a FeatureCollection with one
// Polygon feature per ring. Pure serialization for diagnostic export; there
// is no round-trip guarantee with ParseGeoJSON, which also accepts
// MultiPolygon input.
func PolygonsToGeoJSON(area Area) (string, error) {
	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, len(area)),
	}
	for _, polygon := range area {
		ring := make([][]float64, 0, len(polygon))
		for _, p := range polygon {
			ring = append(ring, []float64{p.Lng, p.Lat})
		}
		coords, err := json.Marshal([][][]float64{ring})
		if err != nil {
			return "", fmt.Errorf("encode polygon coordinates: %w", err)
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Properties: map[string]any{},
			Geometry:   geometry{Type: "Polygon", Coordinates: coords},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return "", fmt.Errorf("encode feature collection: %w", err)
	}
	return string(data), nil
}

// ParseGeoJSON decodes a FeatureCollection into an area. Polygon and
// MultiPolygon geometries are accepted; only outer rings are kept since the
// wave geometry has no use for holes. Rings are closed if the source left
// them open.
func ParseGeoJSON(data []byte) (Area, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("parse geojson: unexpected root type %q", fc.Type)
	}

	var area Area
	for i, f := range fc.Features {
		switch f.Geometry.Type {
		case "Polygon":
			var rings [][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &rings); err != nil {
				return nil, fmt.Errorf("parse polygon feature %d: %w", i, err)
			}
			if len(rings) > 0 {
				area = append(area, ringToPolygon(rings[0]))
			}
		case "MultiPolygon":
			var polys [][][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &polys); err != nil {
				return nil, fmt.Errorf("parse multipolygon feature %d: %w", i, err)
			}
			for _, rings := range polys {
				if len(rings) > 0 {
					area = append(area, ringToPolygon(rings[0]))
				}
			}
		default:
			return nil, fmt.Errorf("parse geojson feature %d: unsupported geometry %q", i, f.Geometry.Type)
		}
	}
	return area, nil
}

func ringToPolygon(ring [][]float64) Polygon {
	polygon := make(Polygon, 0, len(ring))
	for _, coord := range ring {
		if len(coord) < 2 {
			continue
		}
		polygon = append(polygon, Position{Lat: coord[1], Lng: coord[0]})
	}
	return closeRing(polygon)
}

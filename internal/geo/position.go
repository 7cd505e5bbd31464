package geo

import (
	"errors"
	"math"
)

// Position is a WGS-84 latitude/longitude coordinate pair in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Segment is an ordered pair of positions used for intersection tests.
type Segment struct {
	Start Position
	End   Position
}

// Polygon is an ordered ring of positions. Kernel output rings are closed:
// the first element equals the last.
type Polygon []Position

// Area is an ordered collection of polygons (a multi-polygon).
type Area []Polygon

// BoundingBox is the axis-aligned extent of a polygon or area.
// Invariant: SouthWest.Lat <= NorthEast.Lat and SouthWest.Lng <= NorthEast.Lng.
type BoundingBox struct {
	SouthWest Position
	NorthEast Position
}

// ErrEmptyPolygon is returned when a bounding box is requested for a polygon
// with no vertices. That is a caller contract violation, not a data condition.
var ErrEmptyPolygon = errors.New("geo: bounding box of empty polygon")

// Width returns the longitudinal extent of the box in degrees.
func (b BoundingBox) Width() float64 {
	return b.NorthEast.Lng - b.SouthWest.Lng
}

// Height returns the latitudinal extent of the box in degrees.
func (b BoundingBox) Height() float64 {
	return b.NorthEast.Lat - b.SouthWest.Lat
}

// IsZero reports whether the box has no extent and sits at the origin,
// the state before any polygon data has been resolved.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// WidestLatitude returns the latitude row inside the box where a degree of
// longitude spans the most meters: the row closest to the equator.
func (b BoundingBox) WidestLatitude() float64 {
	if b.SouthWest.Lat <= 0 && b.NorthEast.Lat >= 0 {
		return 0
	}
	if math.Abs(b.SouthWest.Lat) < math.Abs(b.NorthEast.Lat) {
		return b.SouthWest.Lat
	}
	return b.NorthEast.Lat
}

// PolygonBbox folds over all vertices tracking min/max latitude and longitude
// independently. A single-point polygon yields a box where both corners equal
// that point.
func PolygonBbox(polygon Polygon) (BoundingBox, error) {
	if len(polygon) == 0 {
		return BoundingBox{}, ErrEmptyPolygon
	}

	sw := polygon[0]
	ne := polygon[0]
	for _, p := range polygon[1:] {
		sw.Lat = math.Min(sw.Lat, p.Lat)
		sw.Lng = math.Min(sw.Lng, p.Lng)
		ne.Lat = math.Max(ne.Lat, p.Lat)
		ne.Lng = math.Max(ne.Lng, p.Lng)
	}
	return BoundingBox{SouthWest: sw, NorthEast: ne}, nil
}

// AreaBbox returns the union bounding box of all polygons in the area.
func AreaBbox(area Area) (BoundingBox, error) {
	if len(area) == 0 {
		return BoundingBox{}, ErrEmptyPolygon
	}

	bbox, err := PolygonBbox(area[0])
	if err != nil {
		return BoundingBox{}, err
	}
	for _, polygon := range area[1:] {
		b, err := PolygonBbox(polygon)
		if err != nil {
			return BoundingBox{}, err
		}
		bbox.SouthWest.Lat = math.Min(bbox.SouthWest.Lat, b.SouthWest.Lat)
		bbox.SouthWest.Lng = math.Min(bbox.SouthWest.Lng, b.SouthWest.Lng)
		bbox.NorthEast.Lat = math.Max(bbox.NorthEast.Lat, b.NorthEast.Lat)
		bbox.NorthEast.Lng = math.Max(bbox.NorthEast.Lng, b.NorthEast.Lng)
	}
	return bbox, nil
}

// onSegmentTolerance bounds the cross product below which a point counts as
// lying on a segment's carrier line, in input-coordinate units.
const onSegmentTolerance = 1e-10

// IsPointOnLineSegment reports whether point lies on the segment, within
// tolerance of the carrier line and inside the segment's bounding interval
// on both axes.
func IsPointOnLineSegment(point Position, segment Segment) bool {
	cross := (segment.End.Lng-segment.Start.Lng)*(point.Lat-segment.Start.Lat) -
		(segment.End.Lat-segment.Start.Lat)*(point.Lng-segment.Start.Lng)
	if math.Abs(cross) > onSegmentTolerance {
		return false
	}

	return point.Lat >= math.Min(segment.Start.Lat, segment.End.Lat) &&
		point.Lat <= math.Max(segment.Start.Lat, segment.End.Lat) &&
		point.Lng >= math.Min(segment.Start.Lng, segment.End.Lng) &&
		point.Lng <= math.Max(segment.Start.Lng, segment.End.Lng)
}

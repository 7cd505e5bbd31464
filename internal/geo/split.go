package geo

import "math"

// SplitResult holds the two sides of a longitude cut. Left collects the
// rings west of (or on) the cut line, Right the rings east of (or on) it.
type SplitResult struct {
	Left  Area
	Right Area
}

// SplitPolygonByLongitude cuts polygon along the meridian at cutLng.
//
// If the cut lies outside the polygon's own longitude extent the polygon is
// returned whole on the single side it occupies: entirely west of the cut
// means Left, entirely east means Right. Otherwise every edge is walked;
// vertices west of the cut accumulate on the left, east on the right, and
// vertices exactly on the cut line go to both. Whenever consecutive vertices
// straddle the cut the crossing point is interpolated and inserted into both
// sides. Each side's point list is then regrouped into possibly-multiple
// closed rings, discarding degenerate ones.
func SplitPolygonByLongitude(polygon Polygon, cutLng float64) SplitResult {
	bbox, err := PolygonBbox(polygon)
	if err != nil {
		return SplitResult{}
	}

	if cutLng >= bbox.NorthEast.Lng {
		return SplitResult{Left: Area{closeRing(polygon)}}
	}
	if cutLng <= bbox.SouthWest.Lng {
		return SplitResult{Right: Area{closeRing(polygon)}}
	}

	var left, right []Position
	assign := func(p Position) {
		if p.Lng <= cutLng {
			left = append(left, p)
		}
		if p.Lng >= cutLng {
			right = append(right, p)
		}
	}

	assign(polygon[0])
	for i := 1; i < len(polygon); i++ {
		prev := polygon[i-1]
		curr := polygon[i]

		if (prev.Lng < cutLng && curr.Lng > cutLng) || (prev.Lng > cutLng && curr.Lng < cutLng) {
			t := (cutLng - prev.Lng) / (curr.Lng - prev.Lng)
			crossing := Position{Lat: prev.Lat + t*(curr.Lat-prev.Lat), Lng: cutLng}
			left = append(left, crossing)
			right = append(right, crossing)
		}
		assign(curr)
	}

	return SplitResult{
		Left:  reassembleRings(left),
		Right: reassembleRings(right),
	}
}

// reassembleRings regroups a flat boundary point list into one or more closed
// rings. The list may describe several independent rings when a straight cut
// bisects a concave or multi-lobed shape: the scan closes off the current
// ring whenever the point under consideration lands on an already-visited
// internal edge of it, then starts a new ring at that point.
func reassembleRings(points []Position) Area {
	var rings Area
	emit := func(candidate Polygon) {
		ring := closeRing(candidate)
		if isValidRing(ring) {
			rings = append(rings, ring)
		}
	}

	var current Polygon
	for _, p := range points {
		if len(current) >= 3 && liesOnInternalEdge(p, current) {
			emit(current)
			current = Polygon{p}
			continue
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		emit(current)
	}
	return rings
}

// liesOnInternalEdge tests p against every edge of the accumulated ring
// except the most recent one, whose endpoint is trivially adjacent.
func liesOnInternalEdge(p Position, ring Polygon) bool {
	for i := 1; i < len(ring)-1; i++ {
		if IsPointOnLineSegment(p, Segment{Start: ring[i-1], End: ring[i]}) {
			return true
		}
	}
	return false
}

// closeRing appends the first point when the ring does not already close.
func closeRing(ring Polygon) Polygon {
	if len(ring) == 0 || ring[0] == ring[len(ring)-1] {
		return ring
	}
	closed := make(Polygon, 0, len(ring)+1)
	closed = append(closed, ring...)
	return append(closed, ring[0])
}

// isValidRing rejects rings with fewer than 3 distinct vertices and rings
// whose vertices are all collinear.
func isValidRing(ring Polygon) bool {
	distinct := make(map[Position]struct{}, len(ring))
	for _, p := range ring {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return false
	}

	a := ring[0]
	for i := 2; i < len(ring); i++ {
		cross := (ring[i-1].Lng-a.Lng)*(ring[i].Lat-a.Lat) -
			(ring[i-1].Lat-a.Lat)*(ring[i].Lng-a.Lng)
		if math.Abs(cross) > onSegmentTolerance {
			return true
		}
	}
	return false
}

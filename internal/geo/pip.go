package geo

// IsPointInPolygon reports whether point falls inside polygon using a
// ray-casting crossing count along the point's latitude row.
//
// Edges that do not bracket the point's latitude are skipped. For each edge
// that does, the edge's longitude at the point's latitude is found by linear
// interpolation; a crossing strictly east of the point flips the parity. If
// the interpolated longitude equals the point's longitude exactly the point
// sits on the edge and is reported inside immediately (see the package doc
// for why this short-circuit is kept).
func IsPointInPolygon(point Position, polygon Polygon) bool {
	inside := false
	for i := 1; i < len(polygon); i++ {
		prev := polygon[i-1]
		curr := polygon[i]

		if (curr.Lat > point.Lat) == (prev.Lat > point.Lat) {
			continue
		}

		crossingLng := (prev.Lng-curr.Lng)*(point.Lat-curr.Lat)/(prev.Lat-curr.Lat) + curr.Lng
		if crossingLng == point.Lng {
			return true
		}
		if crossingLng > point.Lng {
			inside = !inside
		}
	}
	return inside
}

// IsPointInArea reports whether point falls inside any polygon of the area.
func IsPointInArea(point Position, area Area) bool {
	for _, polygon := range area {
		if IsPointInPolygon(point, polygon) {
			return true
		}
	}
	return false
}

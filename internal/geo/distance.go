package geo

import "math"

const (
	earthRadiusMeters = 6371000.0

	// Meters spanned by one degree of longitude at the equator.
	metersPerDegreeAtEquator = 111320.0
)

// Haversine returns the great-circle distance between two positions in meters.
func Haversine(from, to Position) float64 {
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(from.Lat))*math.Cos(toRadians(to.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// MetersPerDegreeLongitude returns the meters spanned by one degree of
// longitude at the given latitude. Meridians converge toward the poles, so
// the value shrinks with the cosine of the latitude.
func MetersPerDegreeLongitude(lat float64) float64 {
	return metersPerDegreeAtEquator * math.Cos(toRadians(lat))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

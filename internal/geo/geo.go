package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point is a geographic coordinate in degrees.
type Point struct {
	// Lat is the latitude in degrees, nominally within [-90, 90].
	Lat float64
	// Lng is the longitude in degrees, nominally within [-180, 180].
	Lng float64
}

// DistanceKm computes the great-circle distance between two points
// using the haversine formula. The result is in kilometers.
// The function is symmetric: DistanceKm(a, b) == DistanceKm(b, a).
func DistanceKm(a, b Point) float64 {
	lat1Rad := degreesToRadians(a.Lat)
	lat2Rad := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// FormatKm renders a distance as the wire string consumed by the legacy
// polling clients: fixed-point with two fraction digits, e.g. "55.50".
func FormatKm(km float64) string {
	return fmt.Sprintf("%.2f", km)
}

// degreesToRadians converts degrees to radians.
func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

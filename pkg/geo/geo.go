package geo

import "math"

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000.0

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Distance returns the great-circle distance between two points in meters,
// computed with the haversine formula. NaN inputs propagate.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

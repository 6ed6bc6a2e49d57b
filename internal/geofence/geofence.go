package geofence

import "math"

// Mean earth radius in meters (spherical approximation).
const earthRadiusMeters = 6371000

// Position is a WGS84 coordinate pair.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Verdict is the result of measuring a position against an office geofence.
type Verdict struct {
	DistanceMeters float64 `json:"distance_meters"`
	InRange        bool    `json:"in_range"`
}

// Distance returns the great-circle (haversine) distance in meters between
// two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Evaluate measures pos against the office coordinate. Identical points
// give distance 0 and are always in range for any non-negative radius.
func Evaluate(pos Position, office Position, radiusMeters float64) Verdict {
	d := Distance(pos.Lat, pos.Lng, office.Lat, office.Lng)
	return Verdict{
		DistanceMeters: d,
		InRange:        d <= radiusMeters,
	}
}

package geo

import (
	"math"
)

const earthRadiusKM = 6371

// DistanceKM returns the great-circle distance in kilometers between
// two coordinates using the haversine formula. Returns nil when any
// coordinate is missing, meaning "unknown - do not filter on distance".
// Inputs are assumed to be valid degrees; out-of-range values are not
// validated.
func DistanceKM(lat1, lng1, lat2, lng2 *float64) *float64 {
	if lat1 == nil || lng1 == nil || lat2 == nil || lng2 == nil {
		return nil
	}

	dLat := toRad(*lat2 - *lat1)
	dLng := toRad(*lng2 - *lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(*lat1))*math.Cos(toRad(*lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	d := earthRadiusKM * c
	return &d
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

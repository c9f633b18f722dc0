// Package geofence holds the pure geometry behind patrol zones: great-circle
// distance, zone containment and officer status classification, and the
// proximity filter used to scope ping delivery. Nothing here performs I/O or
// holds state, so every function is safe for concurrent use.
package geofence

import (
	"math"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
)

// EarthRadiusMeters is the mean radius of the spherical Earth model.
const EarthRadiusMeters = 6371000

// Distance returns the haversine distance between a and b. If either
// coordinate is nil the result is unknown.
func Distance(a, b *domain.Coordinate) domain.Distance {
	if a == nil || b == nil {
		return domain.UnknownDistance()
	}
	return domain.Meters(haversine(a.Lat, a.Lon, b.Lat, b.Lon))
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := toRad(lat1), toRad(lat2)
	dPhi := toRad(lat2 - lat1)
	dLambda := toRad(lon2 - lon1)
	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

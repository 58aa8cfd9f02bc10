// README: Offline route estimation from great-circle distance; used when no Maps key is configured.
package route

import (
	"context"
	"math"
)

const earthRadiusKm = 6371.0

// Offline estimates routes from coordinates alone. Distances use the
// haversine great-circle formula scaled by a road-winding factor; duration
// assumes an average urban speed. Good enough for development and demos.
type Offline struct {
	// RoadFactor stretches the great-circle distance to approximate roads.
	RoadFactor float64
	// AvgSpeedKmh converts distance into a duration estimate.
	AvgSpeedKmh float64
}

func NewOffline() *Offline {
	return &Offline{RoadFactor: 1.3, AvgSpeedKmh: 40}
}

func (o *Offline) Resolve(_ context.Context, origin, destination Waypoint) (Estimate, error) {
	if origin.Coord.Zero() || destination.Coord.Zero() {
		return Estimate{}, ErrNoRoute
	}
	km := haversineKm(origin.Coord.Lat, origin.Coord.Lng, destination.Coord.Lat, destination.Coord.Lng) * o.RoadFactor
	return Estimate{
		DistanceKm:  math.Round(km*10) / 10,
		DurationMin: math.Round(km / o.AvgSpeedKmh * 60),
	}, nil
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

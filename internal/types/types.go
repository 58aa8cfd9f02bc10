// README: Common value objects shared across modules.
package types

// ID is an opaque identifier for drafts, vehicles and bookings.
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Zero reports whether the point carries no coordinates.
func (p Point) Zero() bool {
	return p.Lat == 0 && p.Lng == 0
}

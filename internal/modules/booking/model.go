// README: Booking draft aggregate: the evolving reservation the wizard edits.
package booking

import (
	"time"

	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/pricing"
	"transferdesk/internal/modules/route"
	"transferdesk/internal/types"
)

type ServiceCategory string

const (
	ServiceDistance ServiceCategory = "distance"
	ServiceHourly   ServiceCategory = "hourly"
)

type TransferType string

const (
	TransferOneWay TransferType = "oneWay"
	TransferReturn TransferType = "return"
)

type LocationCategory string

const (
	LocationAddress LocationCategory = "address"
	LocationAirport LocationCategory = "airport"
	LocationHotel   LocationCategory = "hotel"
	LocationCruise  LocationCategory = "cruise"
)

// Location is one endpoint of the reservation. Address alone is a valid
// manual entry; place id and coordinates arrive once a suggestion is
// resolved.
type Location struct {
	Address  string           `json:"address"`
	PlaceID  string           `json:"place_id,omitempty"`
	Coord    types.Point      `json:"coord,omitempty"`
	Category LocationCategory `json:"category"`
}

// Resolvable reports whether the location carries an identifier the route
// provider accepts, not just free text.
func (l Location) Resolvable() bool {
	return l.PlaceID != "" || !l.Coord.Zero()
}

func (l Location) Waypoint() route.Waypoint {
	return route.Waypoint{PlaceID: l.PlaceID, Coord: l.Coord}
}

// Schedule holds the civil date/time fields the wizard edits. Return fields
// are only meaningful for return transfers.
type Schedule struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	ReturnDate string `json:"return_date,omitempty"`
	ReturnTime string `json:"return_time,omitempty"`
}

type Passengers struct {
	Count      int `json:"count"`
	Luggage    int `json:"luggage"`
	ChildSeats int `json:"child_seats"`
}

type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Draft is the central mutable aggregate. It is only ever mutated through
// Store.Apply, which re-establishes every invariant after each merge.
type Draft struct {
	ID       types.ID        `json:"id"`
	Service  ServiceCategory `json:"service"`
	Transfer TransferType    `json:"transfer,omitempty"` // distance only

	Pickup  Location  `json:"pickup"`
	Dropoff *Location `json:"dropoff,omitempty"` // required iff distance

	Schedule    Schedule `json:"schedule"`
	HourlyHours int      `json:"hourly_hours,omitempty"` // required iff hourly

	Passengers Passengers `json:"passengers"`

	// Resolved route, distance bookings only. Zero means unresolved.
	DistanceKm  float64 `json:"distance_km,omitempty"`
	DurationMin float64 `json:"duration_min,omitempty"`
	// RouteFailed flags a soft resolver failure; the wizard stays usable
	// and the user can retry.
	RouteFailed bool `json:"route_failed,omitempty"`

	Vehicle *catalog.Vehicle   `json:"vehicle,omitempty"`
	Price   *pricing.Breakdown `json:"price,omitempty"`

	Contact Contact `json:"contact"`

	// Step is the wizard's current position; owned by the wizard package.
	Step string `json:"step"`

	UpdatedAt time.Time `json:"updated_at"`
}

// RouteResolved reports whether the draft carries a resolved route.
func (d Draft) RouteResolved() bool {
	return d.DistanceKm > 0
}

// AirportLeg reports whether either endpoint is an airport.
func (d Draft) AirportLeg() bool {
	if d.Pickup.Category == LocationAirport {
		return true
	}
	return d.Dropoff != nil && d.Dropoff.Category == LocationAirport
}

// clone returns a deep copy safe to hand outside the store's lock.
func (d Draft) clone() Draft {
	out := d
	if d.Dropoff != nil {
		loc := *d.Dropoff
		out.Dropoff = &loc
	}
	if d.Vehicle != nil {
		v := *d.Vehicle
		v.Features = append([]string(nil), d.Vehicle.Features...)
		out.Vehicle = &v
	}
	if d.Price != nil {
		p := *d.Price
		out.Price = &p
	}
	return out
}

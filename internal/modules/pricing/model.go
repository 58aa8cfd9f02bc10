// README: Pricing input and price breakdown types.
package pricing

// Input is everything a quote depends on. It is assembled by the draft store
// from the current draft and the selected vehicle; computing the same Input
// twice yields an identical Breakdown.
type Input struct {
	Hourly     bool
	Return     bool
	DistanceKm float64
	Hours      int
	ChildSeats int
	// AirportLeg is true when either endpoint of a distance booking is an airport.
	AirportLeg bool

	VehicleBase    float64
	VehiclePerKm   float64
	VehiclePerHour float64
}

// Breakdown itemizes a quote. All amounts are rounded to cents.
type Breakdown struct {
	Base       float64 `json:"base"`
	Distance   float64 `json:"distance"`
	Hourly     float64 `json:"hourly"`
	ChildSeats float64 `json:"child_seats"`
	Airport    float64 `json:"airport"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

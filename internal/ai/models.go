// README: Structured output types for the booking intent extraction.
package ai

// BookingIntent captures the structured output of the model.
type BookingIntent struct {
	// Intent is the customer's primary goal: "booking" when enough fields
	// were extracted to prefill the wizard, "incomplete" otherwise.
	Intent string `json:"intent"`

	// ServiceType is "distance" for point-to-point transfers or "hourly" for
	// a chauffeur hire by the hour. Empty when the request does not say.
	ServiceType string `json:"service_type,omitempty"`

	// Pickup and Dropoff are free-text location phrases as the customer
	// wrote them; the places service resolves them afterwards.
	Pickup  string `json:"pickup,omitempty"`
	Dropoff string `json:"dropoff,omitempty"`

	// PickupISO is the absolute local timestamp (YYYY-MM-DDTHH:mm) the model
	// computed from relative phrases like "tomorrow at 2pm".
	PickupISO string `json:"pickup_iso,omitempty"`
	// ReturnISO is set when the customer asked for a return leg.
	ReturnISO string `json:"return_iso,omitempty"`

	Passengers int `json:"passengers,omitempty"`
	Luggage    int `json:"luggage,omitempty"`
	// HourlyHours is the requested hire duration for hourly bookings.
	HourlyHours int `json:"hourly_hours,omitempty"`

	// Note carries anything the structured fields cannot, e.g. "child seat
	// for a 3-year-old".
	Note string `json:"note,omitempty"`
}

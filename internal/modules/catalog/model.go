// README: Vehicle tier definitions for the reservation catalog.
package catalog

import "transferdesk/internal/types"

type Capacity struct {
	Passengers int `json:"passengers"`
	Luggage    int `json:"luggage"`
}

// Vehicle is an immutable catalog entry. Prices are in the shop currency;
// PerKm applies to distance bookings, PerHour to hourly hires.
type Vehicle struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Capacity Capacity `json:"capacity"`
	Base     float64  `json:"base_price"`
	PerKm    float64  `json:"price_per_km"`
	PerHour  float64  `json:"price_per_hour"`
	Features []string `json:"features"`
}

// Seed is the compiled-in catalog used when no database is configured.
// Order matters: the wizard shows vehicles in catalog order.
func Seed() []Vehicle {
	return []Vehicle{
		{
			ID:       "business-sedan",
			Name:     "Business Sedan",
			Capacity: Capacity{Passengers: 3, Luggage: 2},
			Base:     35, PerKm: 1.2, PerHour: 45,
			Features: []string{"wifi", "water", "leather"},
		},
		{
			ID:       "first-class",
			Name:     "First Class",
			Capacity: Capacity{Passengers: 3, Luggage: 2},
			Base:     55, PerKm: 1.9, PerHour: 70,
			Features: []string{"wifi", "water", "leather", "privacy_glass"},
		},
		{
			ID:       "business-van",
			Name:     "Business Van",
			Capacity: Capacity{Passengers: 7, Luggage: 7},
			Base:     45, PerKm: 1.6, PerHour: 60,
			Features: []string{"wifi", "water", "extra_luggage"},
		},
		{
			ID:       "sprinter",
			Name:     "Sprinter Shuttle",
			Capacity: Capacity{Passengers: 8, Luggage: 10},
			Base:     60, PerKm: 1.8, PerHour: 75,
			Features: []string{"water", "extra_luggage", "high_roof"},
		},
	}
}

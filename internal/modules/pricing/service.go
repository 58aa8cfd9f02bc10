// README: Pure fare computation for distance transfers and hourly hires.
package pricing

import (
	"math"

	"transferdesk/internal/config"
)

type Service struct {
	cfg config.PricingConfig
}

func NewService(cfg config.PricingConfig) *Service {
	return &Service{cfg: cfg}
}

// Compute quotes the given configuration.
//
//	hourly:            base + hours × perHour + childSeats × childSeatFee
//	distance, one-way: base + km × perKm + childSeats × childSeatFee [+ airportFee]
//	distance, return:  as one-way with the distance component doubled, from the
//	                   same one-way resolved distance (no second route lookup)
//	total = subtotal × (1 + taxRate)
func (s *Service) Compute(in Input) Breakdown {
	var b Breakdown
	b.Base = round2(in.VehicleBase)
	b.ChildSeats = round2(float64(in.ChildSeats) * s.cfg.ChildSeatFee)

	if in.Hourly {
		b.Hourly = round2(float64(in.Hours) * in.VehiclePerHour)
	} else {
		km := in.DistanceKm
		if in.Return {
			km *= 2
		}
		b.Distance = round2(km * in.VehiclePerKm)
		if in.AirportLeg {
			b.Airport = round2(s.cfg.AirportFee)
		}
	}

	b.Subtotal = round2(b.Base + b.Distance + b.Hourly + b.ChildSeats + b.Airport)
	b.Tax = round2(b.Subtotal * s.cfg.TaxRate)
	b.Total = round2(b.Subtotal + b.Tax)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// README: Booking persistence: completed drafts become rows in the bookings table.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert writes the confirmed reservation. The full draft is kept as a JSON
// column next to the queryable fields, so later schema additions never lose
// what the customer actually confirmed.
func (s *Store) Insert(ctx context.Context, id types.ID, d booking.Draft) error {
	snapshot, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	var total *float64
	if d.Price != nil {
		total = &d.Price.Total
	}
	var vehicleID *string
	if d.Vehicle != nil {
		v := string(d.Vehicle.ID)
		vehicleID = &v
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, service, pickup_address, dropoff_address,
			pickup_date, pickup_time, vehicle_id, passenger_count,
			contact_email, total, draft, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(id), string(d.Service),
		d.Pickup.Address, dropoffAddress(d),
		d.Schedule.Date, d.Schedule.Time,
		vehicleID, d.Passengers.Count,
		d.Contact.Email, total, snapshot, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func dropoffAddress(d booking.Draft) string {
	if d.Dropoff == nil {
		return ""
	}
	return d.Dropoff.Address
}

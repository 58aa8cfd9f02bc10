// README: Catalog store backed by PostgreSQL, with the compiled-in seed as fallback.
package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Load reads the vehicle catalog in display order. With no pool configured it
// returns the seed so the wizard works without a database.
func (s *Store) Load(ctx context.Context) ([]Vehicle, error) {
	if s == nil || s.db == nil {
		return Seed(), nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name, capacity_passengers, capacity_luggage,
		       base_price, price_per_km, price_per_hour, features
		FROM vehicles
		ORDER BY display_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Capacity.Passengers, &v.Capacity.Luggage,
			&v.Base, &v.PerKm, &v.PerHour, &v.Features,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return Seed(), nil
	}
	return out, nil
}

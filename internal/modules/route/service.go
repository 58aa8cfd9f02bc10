// README: Route resolver wrapping the Google Distance Matrix API.
package route

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"transferdesk/internal/types"
)

var (
	// ErrNoRoute means the provider found no drivable route between the endpoints.
	ErrNoRoute = errors.New("no route between endpoints")
	// ErrProvider covers transport and API failures.
	ErrProvider = errors.New("route provider error")
)

// Estimate is the resolved one-way route.
type Estimate struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

// Waypoint identifies one endpoint of a route request. A place id is
// preferred; coordinates are the fallback identifier.
type Waypoint struct {
	PlaceID string
	Coord   types.Point
}

// Resolvable reports whether the waypoint carries an identifier the provider
// accepts. Free-text-only locations are not resolvable.
func (w Waypoint) Resolvable() bool {
	return w.PlaceID != "" || !w.Coord.Zero()
}

// Same reports whether two waypoints identify the same location.
func (w Waypoint) Same(o Waypoint) bool {
	if w.PlaceID != "" && o.PlaceID != "" {
		return w.PlaceID == o.PlaceID
	}
	return w.Coord == o.Coord && w.PlaceID == o.PlaceID
}

func (w Waypoint) identifier() string {
	if w.PlaceID != "" {
		return "place_id:" + w.PlaceID
	}
	return fmt.Sprintf("%f,%f", w.Coord.Lat, w.Coord.Lng)
}

// Resolver turns two waypoints into a route estimate.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination Waypoint) (Estimate, error)
}

type matrixClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// Service resolves routes through the Distance Matrix API, driving mode.
type Service struct {
	client matrixClient
}

func NewService(apiKey string) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

func (s *Service) Resolve(ctx context.Context, origin, destination Waypoint) (Estimate, error) {
	if !origin.Resolvable() || !destination.Resolvable() {
		return Estimate{}, ErrNoRoute
	}
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origin.identifier()},
		Destinations: []string{destination.identifier()},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}
	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return Estimate{}, ErrNoRoute
	}
	el := resp.Rows[0].Elements[0]
	switch el.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return Estimate{}, ErrNoRoute
	default:
		return Estimate{}, fmt.Errorf("%w: element status %s", ErrProvider, el.Status)
	}
	return Estimate{
		DistanceKm:  float64(el.Distance.Meters) / 1000.0,
		DurationMin: el.Duration.Minutes(),
	}, nil
}

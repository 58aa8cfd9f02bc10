// README: Place suggestion and detail resolution via the Google Places API, with geographic bias.
package places

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"transferdesk/internal/config"
	"transferdesk/internal/types"
)

// Category classifies a suggested place for fee rules and display.
type Category string

const (
	CategoryAddress Category = "address"
	CategoryAirport Category = "airport"
	CategoryHotel   Category = "hotel"
	CategoryCruise  Category = "cruise"
)

// Suggestion is one ranked autocomplete result. A zero-length result set is a
// valid response, distinct from a lookup error.
type Suggestion struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Detail is a fully resolved place.
type Detail struct {
	ID       string      `json:"id"`
	Address  string      `json:"address"`
	Coord    types.Point `json:"coord"`
	Category Category    `json:"category"`
}

// Bias steers suggestion ranking towards a circle. The pickup field uses the
// configured service region; dropoff uses a radius around the pickup point.
type Bias struct {
	Center  types.Point
	RadiusM int
}

type placesClient interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

type Service struct {
	client placesClient
	cfg    config.PlacesConfig
}

func NewService(apiKey string, cfg config.PlacesConfig) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client, cfg: cfg}, nil
}

// RegionBias returns the fixed service-region bias used for pickup queries.
func (s *Service) RegionBias() Bias {
	center := types.Point{
		Lat: (s.cfg.RegionSWLat + s.cfg.RegionNELat) / 2,
		Lng: (s.cfg.RegionSWLng + s.cfg.RegionNELng) / 2,
	}
	// Radius spanning the region box, approximated from the latitude extent.
	radiusM := int((s.cfg.RegionNELat - s.cfg.RegionSWLat) * 111_000)
	if radiusM <= 0 {
		radiusM = 50_000
	}
	return Bias{Center: center, RadiusM: radiusM}
}

// DropoffBias returns a bias circling the resolved pickup point.
func (s *Service) DropoffBias(pickup types.Point) Bias {
	return Bias{Center: pickup, RadiusM: s.cfg.DropoffBiasRadiusM}
}

// Suggest returns ranked place suggestions for a free-text query.
func (s *Service) Suggest(ctx context.Context, query string, bias Bias) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	r := &maps.PlaceAutocompleteRequest{Input: query}
	if !bias.Center.Zero() {
		r.Location = &maps.LatLng{Lat: bias.Center.Lat, Lng: bias.Center.Lng}
		r.Radius = uint(bias.RadiusM)
	}
	resp, err := s.client.PlaceAutocomplete(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places autocomplete: %w", err)
	}
	out := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Suggestion{
			ID:       p.PlaceID,
			Label:    p.Description,
			Category: categorize(p.Types, p.Description),
		})
	}
	return out, nil
}

// Resolve fetches the coordinates and canonical address for a place id.
func (s *Service) Resolve(ctx context.Context, placeID string) (Detail, error) {
	resp, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskGeometry,
			maps.PlaceDetailsFieldMaskTypes,
		},
	})
	if err != nil {
		return Detail{}, fmt.Errorf("place details: %w", err)
	}
	return Detail{
		ID:      placeID,
		Address: resp.FormattedAddress,
		Coord: types.Point{
			Lat: resp.Geometry.Location.Lat,
			Lng: resp.Geometry.Location.Lng,
		},
		Category: categorize(resp.Types, resp.FormattedAddress),
	}, nil
}

func categorize(placeTypes []string, label string) Category {
	for _, t := range placeTypes {
		switch t {
		case "airport":
			return CategoryAirport
		case "lodging":
			return CategoryHotel
		}
	}
	if strings.Contains(strings.ToLower(label), "cruise") {
		return CategoryCruise
	}
	return CategoryAddress
}

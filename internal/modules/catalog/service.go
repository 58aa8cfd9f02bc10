// README: Catalog service: capacity filtering and vehicle lookup.
package catalog

import (
	"context"
	"errors"
	"sync"

	"transferdesk/internal/types"
)

var ErrUnknownVehicle = errors.New("unknown vehicle")

type Service struct {
	store *Store

	mu       sync.RWMutex
	vehicles []Vehicle
}

func NewService(store *Store) *Service {
	return &Service{store: store, vehicles: Seed()}
}

// Refresh reloads the catalog from the store. The previous catalog stays in
// place if the load fails.
func (s *Service) Refresh(ctx context.Context) error {
	vs, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.vehicles = vs
	s.mu.Unlock()
	return nil
}

// All returns the catalog in display order.
func (s *Service) All() []Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Available returns the vehicles that seat at least passengerCount, in
// catalog order. An empty result is a valid, displayable state.
func (s *Service) Available(passengerCount int) []Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if v.Capacity.Passengers >= passengerCount {
			out = append(out, v)
		}
	}
	return out
}

// ByID looks a vehicle up by its catalog id.
func (s *Service) ByID(id types.ID) (Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return Vehicle{}, ErrUnknownVehicle
}

// README: Submission service: final completeness check, persist, drop the draft.
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/wizard"
	"transferdesk/internal/types"
)

var ErrIncomplete = errors.New("draft not ready for submission")

// Receipt is what the customer gets back: the booking reference and the
// confirmed total.
type Receipt struct {
	BookingID types.ID `json:"booking_id"`
	Total     float64  `json:"total"`
}

// Inserter is the persistence seam; the pgx store implements it, tests fake it.
type Inserter interface {
	Insert(ctx context.Context, id types.ID, d booking.Draft) error
}

type Service struct {
	store    Inserter
	registry *booking.Registry
}

func NewService(store Inserter, registry *booking.Registry) *Service {
	return &Service{store: store, registry: registry}
}

// Submit re-validates the whole draft, persists it and deletes it from the
// registry. Steps can go stale behind the wizard's back (a vehicle cleared by
// a late passenger change), so the gate chain runs again here regardless of
// the step the client claims to be on.
func (s *Service) Submit(ctx context.Context, draftID types.ID) (Receipt, error) {
	store, err := s.registry.Get(draftID)
	if err != nil {
		return Receipt{}, err
	}
	d := store.Snapshot()

	if err := validate(d); err != nil {
		return Receipt{}, err
	}

	bookingID := types.ID(uuid.NewString())
	if err := s.store.Insert(ctx, bookingID, d); err != nil {
		return Receipt{}, err
	}
	s.registry.Delete(draftID)

	return Receipt{BookingID: bookingID, Total: d.Price.Total}, nil
}

func validate(d booking.Draft) error {
	for _, step := range []wizard.Step{wizard.StepRideDetails, wizard.StepVehicle, wizard.StepContact} {
		if !wizard.CanAdvance(step, d) {
			return fmt.Errorf("%w: %s", ErrIncomplete, step)
		}
	}
	if d.Service == booking.ServiceDistance && !d.RouteResolved() {
		return fmt.Errorf("%w: route not resolved", ErrIncomplete)
	}
	if d.Price == nil {
		return fmt.Errorf("%w: no price", ErrIncomplete)
	}
	return nil
}

// README: Wizard step machine: ordered steps and the per-step advance gate.
package wizard

import (
	"errors"
	"net/mail"
	"strings"

	"transferdesk/internal/modules/booking"
)

type Step string

const (
	StepRideDetails Step = "ride_details"
	StepVehicle     Step = "vehicle"
	StepContact     Step = "contact"
	StepSummary     Step = "summary"
)

// Order is the wizard's fixed step sequence.
var Order = []Step{StepRideDetails, StepVehicle, StepContact, StepSummary}

var ErrStepIncomplete = errors.New("step requirements not met")

// Normalize maps an unknown or empty step to the first one. Hydrated drafts
// from older sessions may carry step names this build no longer knows.
func Normalize(s string) Step {
	for _, step := range Order {
		if Step(s) == step {
			return step
		}
	}
	return Order[0]
}

func index(s Step) int {
	for i, step := range Order {
		if s == step {
			return i
		}
	}
	return 0
}

// Next returns the following step, or the same step when already at the end.
func Next(s Step) Step {
	i := index(s)
	if i+1 < len(Order) {
		return Order[i+1]
	}
	return s
}

// Prev returns the preceding step, or the same step when already at the start.
func Prev(s Step) Step {
	i := index(s)
	if i > 0 {
		return Order[i-1]
	}
	return s
}

// CanAdvance reports whether the draft satisfies the requirements of the
// given step. It is a pure predicate over the draft; the store has already
// auto-corrected everything correctable, so the gate only checks what the
// user must still supply.
func CanAdvance(s Step, d booking.Draft) bool {
	switch s {
	case StepRideDetails:
		return rideDetailsComplete(d)
	case StepVehicle:
		return rideDetailsComplete(d) && d.Vehicle != nil
	case StepContact:
		return rideDetailsComplete(d) && d.Vehicle != nil && ContactValid(d.Contact)
	case StepSummary:
		// Terminal step; leaving it is submission, not advancement.
		return false
	}
	return false
}

func rideDetailsComplete(d booking.Draft) bool {
	if d.Pickup.Address == "" {
		return false
	}
	switch d.Service {
	case booking.ServiceHourly:
		return d.HourlyHours >= 2
	case booking.ServiceDistance:
		if d.Dropoff == nil || d.Dropoff.Address == "" {
			return false
		}
		if d.Transfer == booking.TransferReturn && d.Schedule.ReturnDate == "" {
			return false
		}
		return true
	}
	return false
}

// ContactValid checks the lead passenger details: a name plus a plausible
// email and phone number.
func ContactValid(c booking.Contact) bool {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return false
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return false
	}
	return phonePlausible(c.Phone)
}

func phonePlausible(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 6
}

// TryAdvance moves the draft to the next step if the current one is complete.
func TryAdvance(s *booking.Store) (Step, error) {
	d := s.Snapshot()
	cur := Normalize(d.Step)
	if !CanAdvance(cur, d) {
		return cur, ErrStepIncomplete
	}
	next := Next(cur)
	s.SetStep(string(next))
	return next, nil
}

// Back moves to the previous step. Backward navigation is always allowed and
// never clears entered data.
func Back(s *booking.Store) Step {
	cur := Normalize(s.Snapshot().Step)
	prev := Prev(cur)
	s.SetStep(string(prev))
	return prev
}

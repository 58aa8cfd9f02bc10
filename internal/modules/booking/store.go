// README: Single-writer draft store: atomic patch application and derived-value recomputation.
package booking

import (
	"context"
	"sync"
	"time"

	"transferdesk/internal/coalesce"
	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/pricing"
	"transferdesk/internal/modules/route"
	"transferdesk/internal/modules/schedule"
	"transferdesk/internal/types"
)

const resolveTimeout = 10 * time.Second

// Deps are the collaborators a draft store consults after every merge.
type Deps struct {
	Rules   schedule.Rules
	Pricer  *pricing.Service
	Catalog *catalog.Service
	// Resolver is optional; nil disables route resolution entirely.
	Resolver route.Resolver
	// Debounce is the quiet window for coalescing route re-resolution
	// during patch bursts. Zero resolves immediately.
	Debounce time.Duration
	// MinHourlyHours is the smallest bookable hourly hire.
	MinHourlyHours int
}

// Store owns one draft. All mutation goes through Apply under a single lock,
// so no reader ever observes a half-applied category switch. Route
// resolution is asynchronous; a result is committed only if its captured
// inputs still match the draft (last input wins, not last response).
type Store struct {
	deps  Deps
	sched *coalesce.Scheduler

	mu    sync.Mutex
	draft Draft

	// resolveGen invalidates in-flight resolutions when route inputs change.
	resolveGen uint64
	// lastOrigin/lastDest are the inputs the latest resolution was launched
	// for; they suppress redundant relaunches for unchanged endpoints.
	lastOrigin route.Waypoint
	lastDest   route.Waypoint
}

// NewStore creates a draft with defaulted schedule and passenger values, the
// state the ride-details step starts from.
func NewStore(id types.ID, deps Deps) *Store {
	if deps.MinHourlyHours <= 0 {
		deps.MinHourlyHours = 2
	}
	date, tm := schedule.Split(deps.Rules.MinimumPickupAt())
	s := &Store{
		deps:  deps,
		sched: coalesce.New(deps.Debounce),
		draft: Draft{
			ID:         id,
			Service:    ServiceDistance,
			Transfer:   TransferOneWay,
			Schedule:   Schedule{Date: date, Time: tm},
			Passengers: Passengers{Count: 1},
			UpdatedAt:  time.Now(),
		},
	}
	return s
}

// Snapshot returns a deep copy of the current draft.
func (s *Store) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.clone()
}

// Apply merges a patch and synchronously re-establishes every derived value:
// schedule normalization, capacity check, conditional route re-resolution
// and pricing. Invalid input is corrected or left for the step gate; Apply
// never fails.
func (s *Store) Apply(p Patch) {
	s.mu.Lock()
	p.merge(&s.draft)
	if p.VehicleID != nil {
		s.selectVehicleLocked(*p.VehicleID)
	}
	s.normalizeLocked()
	s.applyScheduleRulesLocked()
	s.enforceCapacityLocked()
	launch, origin, dest, gen := s.routeInputsLocked()
	s.repriceLocked()
	s.draft.UpdatedAt = time.Now()
	s.mu.Unlock()

	if launch {
		s.launchResolve(origin, dest, gen)
	}
}

// SelectVehicle is sugar for a vehicle-only patch. Re-selecting the same
// vehicle still goes through the full pipeline, so the price is recomputed.
func (s *Store) SelectVehicle(id types.ID) {
	s.Apply(Patch{VehicleID: &id})
}

// SetStep records the wizard's current position.
func (s *Store) SetStep(step string) {
	s.mu.Lock()
	s.draft.Step = step
	s.draft.UpdatedAt = time.Now()
	s.mu.Unlock()
}

// RetryRoute relaunches resolution for the current endpoints after a soft
// failure.
func (s *Store) RetryRoute() {
	s.mu.Lock()
	d := s.draft
	if s.deps.Resolver == nil || d.Service != ServiceDistance || d.Dropoff == nil {
		s.mu.Unlock()
		return
	}
	origin, dest := d.Pickup.Waypoint(), d.Dropoff.Waypoint()
	if !origin.Resolvable() || !dest.Resolvable() || origin.Same(dest) {
		s.mu.Unlock()
		return
	}
	s.draft.RouteFailed = false
	s.resolveGen++
	gen := s.resolveGen
	s.lastOrigin, s.lastDest = origin, dest
	s.mu.Unlock()

	s.launchResolve(origin, dest, gen)
}

// Close stops any pending debounced work.
func (s *Store) Close() {
	s.sched.Stop()
}

func (s *Store) selectVehicleLocked(id types.ID) {
	if id == "" {
		s.draft.Vehicle = nil
		return
	}
	v, err := s.deps.Catalog.ByID(id)
	if err != nil {
		// Unknown id: keep the previous selection, let the gate decide.
		return
	}
	s.draft.Vehicle = &v
}

// normalizeLocked enforces the category invariants: the dependent fields of
// the other category are cleared in the same commit as the switch, so no
// external read ever sees an hourly draft with a dropoff.
func (s *Store) normalizeLocked() {
	d := &s.draft
	if d.Service == "" {
		d.Service = ServiceDistance
	}
	switch d.Service {
	case ServiceHourly:
		d.Dropoff = nil
		d.Transfer = ""
		d.Schedule.ReturnDate = ""
		d.Schedule.ReturnTime = ""
		s.clearRouteLocked()
		if d.HourlyHours < s.deps.MinHourlyHours {
			d.HourlyHours = s.deps.MinHourlyHours
		}
	case ServiceDistance:
		d.HourlyHours = 0
		if d.Transfer == "" {
			d.Transfer = TransferOneWay
		}
		if d.Transfer != TransferReturn {
			d.Schedule.ReturnDate = ""
			d.Schedule.ReturnTime = ""
		}
	}
	if d.Passengers.Count < 1 {
		d.Passengers.Count = 1
	}
	if d.Passengers.Luggage < 0 {
		d.Passengers.Luggage = 0
	}
	if d.Passengers.ChildSeats < 0 {
		d.Passengers.ChildSeats = 0
	}
	if d.Passengers.ChildSeats > 3 {
		d.Passengers.ChildSeats = 3
	}
}

func (s *Store) applyScheduleRulesLocked() {
	d := &s.draft
	d.Schedule.Date, d.Schedule.Time = s.deps.Rules.NormalizePickup(d.Schedule.Date, d.Schedule.Time)
	if d.Service == ServiceDistance && d.Transfer == TransferReturn {
		d.Schedule.ReturnDate, d.Schedule.ReturnTime = s.deps.Rules.EnsureReturnOrdering(
			d.Schedule.Date, d.Schedule.Time, d.Schedule.ReturnDate, d.Schedule.ReturnTime)
	}
}

func (s *Store) enforceCapacityLocked() {
	d := &s.draft
	if d.Vehicle != nil && d.Vehicle.Capacity.Passengers < d.Passengers.Count {
		d.Vehicle = nil
	}
}

func (s *Store) clearRouteLocked() {
	s.draft.DistanceKm = 0
	s.draft.DurationMin = 0
	s.draft.RouteFailed = false
	s.lastOrigin, s.lastDest = route.Waypoint{}, route.Waypoint{}
	s.resolveGen++ // invalidate anything in flight
}

// routeInputsLocked decides whether the current endpoints call for a fresh
// resolution. Changed inputs immediately drop the stale resolved values.
func (s *Store) routeInputsLocked() (launch bool, origin, dest route.Waypoint, gen uint64) {
	d := &s.draft
	if d.Service != ServiceDistance || d.Dropoff == nil {
		return false, origin, dest, 0
	}
	origin, dest = d.Pickup.Waypoint(), d.Dropoff.Waypoint()

	unchanged := origin.Same(s.lastOrigin) && dest.Same(s.lastDest)
	if unchanged {
		return false, origin, dest, 0
	}

	// Inputs changed: whatever is resolved belongs to the old pair.
	s.clearRouteLocked()

	if s.deps.Resolver == nil || !origin.Resolvable() || !dest.Resolvable() || origin.Same(dest) {
		return false, origin, dest, 0
	}
	s.lastOrigin, s.lastDest = origin, dest
	return true, origin, dest, s.resolveGen
}

func (s *Store) launchResolve(origin, dest route.Waypoint, gen uint64) {
	s.sched.Submit(func(stale func() bool) {
		if stale() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		est, err := s.deps.Resolver.Resolve(ctx, origin, dest)
		s.commitRoute(gen, origin, dest, est, err)
	})
}

// commitRoute applies a resolution result unless it is stale: the generation
// must match and the captured inputs must still be the draft's inputs.
func (s *Store) commitRoute(gen uint64, origin, dest route.Waypoint, est route.Estimate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.resolveGen {
		return
	}
	d := &s.draft
	if d.Service != ServiceDistance || d.Dropoff == nil {
		return
	}
	if !d.Pickup.Waypoint().Same(origin) || !d.Dropoff.Waypoint().Same(dest) {
		return
	}
	if err != nil {
		// Soft failure: previous values stay, the wizard remains usable.
		d.RouteFailed = true
		return
	}
	d.DistanceKm = est.DistanceKm
	d.DurationMin = est.DurationMin
	d.RouteFailed = false
	s.repriceLocked()
	d.UpdatedAt = time.Now()
}

// repriceLocked recomputes the quote from the current draft, or clears it
// when the draft cannot be priced yet. The breakdown is a pure function of
// the fields it reads.
func (s *Store) repriceLocked() {
	d := &s.draft
	if s.deps.Pricer == nil || d.Vehicle == nil {
		d.Price = nil
		return
	}
	in := pricing.Input{
		ChildSeats:     d.Passengers.ChildSeats,
		VehicleBase:    d.Vehicle.Base,
		VehiclePerKm:   d.Vehicle.PerKm,
		VehiclePerHour: d.Vehicle.PerHour,
	}
	switch d.Service {
	case ServiceHourly:
		in.Hourly = true
		in.Hours = d.HourlyHours
	case ServiceDistance:
		if !d.RouteResolved() {
			d.Price = nil
			return
		}
		in.DistanceKm = d.DistanceKm
		in.Return = d.Transfer == TransferReturn
		in.AirportLeg = d.AirportLeg()
	}
	b := s.deps.Pricer.Compute(in)
	d.Price = &b
}

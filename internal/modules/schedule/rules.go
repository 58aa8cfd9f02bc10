// README: Schedule rules: minimum-advance clamp and pickup/return ordering auto-correction.
package schedule

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Rules evaluates the temporal constraints of a reservation. All civil
// date/time strings are interpreted in Loc. A zero Now falls back to the
// wall clock; tests pin it.
type Rules struct {
	MinAdvance time.Duration
	Loc        *time.Location
	Now        func() time.Time
}

func New(minAdvance time.Duration, loc *time.Location) Rules {
	return Rules{MinAdvance: minAdvance, Loc: loc}
}

func (r Rules) now() time.Time {
	if r.Now != nil {
		return r.Now().In(r.loc())
	}
	return time.Now().In(r.loc())
}

func (r Rules) loc() *time.Location {
	if r.Loc != nil {
		return r.Loc
	}
	return time.UTC
}

// MinimumPickupAt returns the earliest bookable instant, truncated to whole minutes.
func (r Rules) MinimumPickupAt() time.Time {
	return r.now().Add(r.MinAdvance).Truncate(time.Minute)
}

// At combines a civil date and time into an instant in the rules' zone.
func (r Rules) At(date, tm string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+tm, r.loc())
}

// Split breaks an instant into the civil date and time fields the wizard edits.
func Split(t time.Time) (date, tm string) {
	return t.Format(DateLayout), t.Format(TimeLayout)
}

// NormalizePickup clamps a pickup that is unparsable or earlier than the
// minimum bookable instant up to that minimum. Stale hydrated drafts are
// corrected rather than rejected.
func (r Rules) NormalizePickup(date, tm string) (string, string) {
	min := r.MinimumPickupAt()
	at, err := r.At(date, tm)
	if err != nil || at.Before(min) {
		return Split(min)
	}
	return date, tm
}

// MinimumReturnDate returns the calendar day after the pickup date, the
// earliest selectable return date. An unparsable pickup date yields the day
// after the minimum pickup instant.
func (r Rules) MinimumReturnDate(pickupDate string) string {
	d, err := time.ParseInLocation(DateLayout, pickupDate, r.loc())
	if err != nil {
		d = r.MinimumPickupAt()
	}
	return d.AddDate(0, 0, 1).Format(DateLayout)
}

// EnsureReturnOrdering guarantees the return instant strictly exceeds the
// pickup instant. A violating (or unparsable) return is shifted to the pickup
// instant plus one day, keeping the pickup's time-of-day.
func (r Rules) EnsureReturnOrdering(pickupDate, pickupTime, returnDate, returnTime string) (string, string) {
	pickupAt, err := r.At(pickupDate, pickupTime)
	if err != nil {
		return returnDate, returnTime
	}
	returnAt, err := r.At(returnDate, returnTime)
	if err == nil && returnAt.After(pickupAt) {
		return returnDate, returnTime
	}
	return Split(pickupAt.AddDate(0, 0, 1))
}

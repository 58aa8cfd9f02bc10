// README: Quick entry: free-text booking request → prefilled draft patch.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"transferdesk/internal/ai"
	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/places"
	"transferdesk/internal/types"
)

// parseTimeout bounds the model round trip; the wizard opens with whatever
// was extracted by then or blank.
const parseTimeout = 8 * time.Second

var ErrNoIntent = errors.New("no booking intent recognized")

// placeFinder is the slice of the places service quick entry needs.
type placeFinder interface {
	Suggest(ctx context.Context, query string, bias places.Bias) ([]places.Suggestion, error)
	Resolve(ctx context.Context, placeID string) (places.Detail, error)
	RegionBias() places.Bias
	DropoffBias(pickup types.Point) places.Bias
}

// QuickEntry turns a customer's one-line request ("BER to Hotel Adlon
// tomorrow 2pm, 2 people") into a draft patch, resolving the extracted
// location phrases through the places service.
type QuickEntry struct {
	parser ai.IntentParser
	places placeFinder
	loc    *time.Location
}

func NewQuickEntry(parser ai.IntentParser, finder placeFinder, loc *time.Location) *QuickEntry {
	if loc == nil {
		loc = time.UTC
	}
	return &QuickEntry{parser: parser, places: finder, loc: loc}
}

// Prefill parses the message and builds a patch for a fresh draft. Location
// resolution is best effort: an unresolvable phrase stays as free text and
// the wizard's own autocomplete takes over.
func (q *QuickEntry) Prefill(ctx context.Context, message string) (booking.Patch, error) {
	ctx, cancel := context.WithTimeout(ctx, parseTimeout)
	defer cancel()

	intent, err := q.parser.ParseBookingIntent(ctx, message, map[string]string{
		"current_time": time.Now().In(q.loc).Format(time.RFC3339),
	})
	if err != nil {
		return booking.Patch{}, fmt.Errorf("parse booking intent: %w", err)
	}
	if intent.Intent != "booking" || intent.Pickup == "" {
		return booking.Patch{}, ErrNoIntent
	}

	svc := booking.ServiceDistance
	if intent.ServiceType == "hourly" {
		svc = booking.ServiceHourly
	}
	p := booking.Patch{Service: &svc}

	pickup := q.resolvePhrase(ctx, intent.Pickup, q.places.RegionBias())
	p.Pickup = &pickup

	if svc == booking.ServiceDistance && intent.Dropoff != "" {
		bias := q.places.RegionBias()
		if !pickup.Coord.Zero() {
			bias = q.places.DropoffBias(pickup.Coord)
		}
		dropoff := q.resolvePhrase(ctx, intent.Dropoff, bias)
		p.Dropoff = &dropoff
	}

	sched := &booking.SchedulePatch{}
	if date, tm, ok := splitISO(intent.PickupISO); ok {
		sched.Date, sched.Time = &date, &tm
	}
	if date, tm, ok := splitISO(intent.ReturnISO); ok {
		tr := booking.TransferReturn
		p.Transfer = &tr
		sched.ReturnDate, sched.ReturnTime = &date, &tm
	}
	if sched.Date != nil || sched.ReturnDate != nil {
		p.Schedule = sched
	}

	if intent.Passengers > 0 || intent.Luggage > 0 {
		pp := &booking.PassengersPatch{}
		if intent.Passengers > 0 {
			pp.Count = &intent.Passengers
		}
		if intent.Luggage > 0 {
			pp.Luggage = &intent.Luggage
		}
		p.Passengers = pp
	}
	if svc == booking.ServiceHourly && intent.HourlyHours > 0 {
		p.HourlyHours = &intent.HourlyHours
	}
	return p, nil
}

// resolvePhrase runs the phrase through autocomplete and takes the top
// suggestion. Any failure falls back to the phrase as a manual address.
func (q *QuickEntry) resolvePhrase(ctx context.Context, phrase string, bias places.Bias) booking.Location {
	fallback := booking.Location{Address: phrase, Category: booking.LocationAddress}

	suggestions, err := q.places.Suggest(ctx, phrase, bias)
	if err != nil || len(suggestions) == 0 {
		if err != nil {
			log.Printf("quick entry: suggest %q: %v", phrase, err)
		}
		return fallback
	}
	detail, err := q.places.Resolve(ctx, suggestions[0].ID)
	if err != nil {
		log.Printf("quick entry: resolve %q: %v", suggestions[0].ID, err)
		return fallback
	}
	return booking.Location{
		Address:  detail.Address,
		PlaceID:  detail.ID,
		Coord:    detail.Coord,
		Category: locationCategory(detail.Category),
	}
}

func locationCategory(c places.Category) booking.LocationCategory {
	switch c {
	case places.CategoryAirport:
		return booking.LocationAirport
	case places.CategoryHotel:
		return booking.LocationHotel
	case places.CategoryCruise:
		return booking.LocationCruise
	}
	return booking.LocationAddress
}

func splitISO(s string) (date, tm string, ok bool) {
	i := strings.IndexByte(s, 'T')
	if i != 10 || len(s) < 16 {
		return "", "", false
	}
	return s[:10], s[11:16], true
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"transferdesk/internal/ai"
	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/places"
	"transferdesk/internal/types"
)

type fakeParser struct {
	intent *ai.BookingIntent
	err    error
}

func (f fakeParser) ParseBookingIntent(context.Context, string, map[string]string) (*ai.BookingIntent, error) {
	return f.intent, f.err
}

type fakeFinder struct {
	suggestions map[string][]places.Suggestion
	details     map[string]places.Detail
	suggestErr  error
	biases      []places.Bias
}

func (f *fakeFinder) Suggest(_ context.Context, query string, bias places.Bias) ([]places.Suggestion, error) {
	f.biases = append(f.biases, bias)
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return f.suggestions[query], nil
}

func (f *fakeFinder) Resolve(_ context.Context, id string) (places.Detail, error) {
	d, ok := f.details[id]
	if !ok {
		return places.Detail{}, errors.New("unknown place")
	}
	return d, nil
}

func (f *fakeFinder) RegionBias() places.Bias {
	return places.Bias{Center: types.Point{Lat: 52.4, Lng: 13.3}, RadiusM: 60000}
}

func (f *fakeFinder) DropoffBias(p types.Point) places.Bias {
	return places.Bias{Center: p, RadiusM: 50000}
}

func TestPrefillDistanceBooking(t *testing.T) {
	finder := &fakeFinder{
		suggestions: map[string][]places.Suggestion{
			"BER":         {{ID: "p1", Label: "Berlin Brandenburg Airport"}},
			"Hotel Adlon": {{ID: "p2", Label: "Hotel Adlon Kempinski"}},
		},
		details: map[string]places.Detail{
			"p1": {ID: "p1", Address: "Berlin Brandenburg Airport", Coord: types.Point{Lat: 52.36, Lng: 13.51}, Category: places.CategoryAirport},
			"p2": {ID: "p2", Address: "Unter den Linden 77, Berlin", Coord: types.Point{Lat: 52.516, Lng: 13.38}, Category: places.CategoryHotel},
		},
	}
	qe := NewQuickEntry(fakeParser{intent: &ai.BookingIntent{
		Intent:      "booking",
		ServiceType: "distance",
		Pickup:      "BER",
		Dropoff:     "Hotel Adlon",
		PickupISO:   "2026-03-02T14:00",
		Passengers:  2,
		Luggage:     3,
	}}, finder, time.UTC)

	p, err := qe.Prefill(context.Background(), "BER to Hotel Adlon tomorrow 2pm, 2 people, 3 bags")
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if *p.Service != booking.ServiceDistance {
		t.Errorf("service = %s", *p.Service)
	}
	if p.Pickup.PlaceID != "p1" || p.Pickup.Category != booking.LocationAirport {
		t.Errorf("pickup = %+v", p.Pickup)
	}
	if p.Dropoff == nil || p.Dropoff.PlaceID != "p2" || p.Dropoff.Category != booking.LocationHotel {
		t.Errorf("dropoff = %+v", p.Dropoff)
	}
	if *p.Schedule.Date != "2026-03-02" || *p.Schedule.Time != "14:00" {
		t.Errorf("schedule = %v %v", *p.Schedule.Date, *p.Schedule.Time)
	}
	if *p.Passengers.Count != 2 || *p.Passengers.Luggage != 3 {
		t.Errorf("passengers = %+v", p.Passengers)
	}

	// The dropoff query must have been biased around the resolved pickup.
	if len(finder.biases) != 2 || finder.biases[1].Center != (types.Point{Lat: 52.36, Lng: 13.51}) {
		t.Errorf("dropoff bias = %+v", finder.biases)
	}
}

func TestPrefillHourlyBooking(t *testing.T) {
	finder := &fakeFinder{
		suggestions: map[string][]places.Suggestion{"Potsdamer Platz": {{ID: "p3"}}},
		details:     map[string]places.Detail{"p3": {ID: "p3", Address: "Potsdamer Platz, Berlin"}},
	}
	qe := NewQuickEntry(fakeParser{intent: &ai.BookingIntent{
		Intent:      "booking",
		ServiceType: "hourly",
		Pickup:      "Potsdamer Platz",
		HourlyHours: 4,
	}}, finder, time.UTC)

	p, err := qe.Prefill(context.Background(), "car and driver for 4 hours from Potsdamer Platz")
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if *p.Service != booking.ServiceHourly {
		t.Errorf("service = %s", *p.Service)
	}
	if p.HourlyHours == nil || *p.HourlyHours != 4 {
		t.Errorf("hourly hours = %v", p.HourlyHours)
	}
	if p.Dropoff != nil {
		t.Error("hourly prefill must not carry a dropoff")
	}
}

func TestPrefillUnresolvablePhraseFallsBackToFreeText(t *testing.T) {
	finder := &fakeFinder{suggestErr: errors.New("places down")}
	qe := NewQuickEntry(fakeParser{intent: &ai.BookingIntent{
		Intent: "booking",
		Pickup: "my office on Torstrasse",
	}}, finder, time.UTC)

	p, err := qe.Prefill(context.Background(), "pickup at my office on Torstrasse")
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if p.Pickup.Address != "my office on Torstrasse" || p.Pickup.PlaceID != "" {
		t.Errorf("pickup = %+v, want free-text fallback", p.Pickup)
	}
}

func TestPrefillNoIntent(t *testing.T) {
	qe := NewQuickEntry(fakeParser{intent: &ai.BookingIntent{Intent: "incomplete"}}, &fakeFinder{}, time.UTC)
	if _, err := qe.Prefill(context.Background(), "hello"); !errors.Is(err, ErrNoIntent) {
		t.Fatalf("expected ErrNoIntent, got %v", err)
	}

	qe = NewQuickEntry(fakeParser{err: errors.New("model down")}, &fakeFinder{}, time.UTC)
	if _, err := qe.Prefill(context.Background(), "hello"); err == nil {
		t.Fatal("expected parser error")
	}
}
